package attendees

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("attendee not found")

// Attendee is a public registration for an event. Attendees belong to an
// organization only indirectly, through the event they registered for.
type Attendee struct {
	ID        string
	ULID      string
	Name      string
	Email     string
	Phone     string
	EventULID string
	CreatedAt time.Time
}

type CreateParams struct {
	Name  string
	Email string
	Phone string
}

type Repository interface {
	// ListByOrg returns attendees across the organization's live events.
	// Registrations for soft-deleted events are excluded.
	ListByOrg(ctx context.Context, orgULID string) ([]Attendee, error)
	CreateForEvent(ctx context.Context, eventULID string, params CreateParams) (*Attendee, error)
	CountForEvent(ctx context.Context, eventULID string) (int, error)
}
