package registration

import (
	"context"
	"strings"
	"time"

	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/gatherly/server/internal/sanitize"
	"github.com/gatherly/server/internal/validation"
)

// Service is the public, unauthenticated side of events: browsing what is
// upcoming for a tenant and registering to attend.
type Service struct {
	events    events.Repository
	attendees attendees.Repository
	capacity  CapacityPolicy
	now       func() time.Time
}

func NewService(eventsRepo events.Repository, attendeesRepo attendees.Repository, capacity CapacityPolicy) *Service {
	return &Service{
		events:    eventsRepo,
		attendees: attendeesRepo,
		capacity:  capacity,
		now:       time.Now,
	}
}

type RegisterInput struct {
	EventID string `json:"event_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
}

// ListUpcoming returns the tenant's events whose date is now or later.
// Events starting exactly now are still included.
func (s *Service) ListUpcoming(ctx context.Context, orgULID string) ([]events.Event, error) {
	return s.events.ListUpcoming(ctx, orgULID, s.now())
}

// Register signs an attendee up for one of the tenant's upcoming or past
// events. The event must belong to the tenant; anything else, including a
// malformed event id, reads as not found.
func (s *Service) Register(ctx context.Context, orgULID string, input RegisterInput) (*attendees.Attendee, error) {
	input.EventID = strings.TrimSpace(input.EventID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := ids.ValidateULID(input.EventID); err != nil {
		return nil, events.ErrNotFound
	}

	event, err := s.events.GetByULID(ctx, orgULID, input.EventID)
	if err != nil {
		return nil, err
	}
	if err := s.capacity.Check(ctx, event); err != nil {
		return nil, err
	}

	return s.attendees.CreateForEvent(ctx, event.ULID, attendees.CreateParams{
		Name:  sanitize.Text(input.Name),
		Email: input.Email,
		Phone: sanitize.Text(input.Phone),
	})
}
