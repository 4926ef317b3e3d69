package attendees

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every attendee registered for any of the organization's
// live events. Deleting an event takes its registrations off the roster.
func (s *Service) List(ctx context.Context, orgULID string) ([]Attendee, error) {
	return s.repo.ListByOrg(ctx, orgULID)
}
