package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

// Event belongs to exactly one Organization. Every read, update and delete
// is scoped to the owning organization in the repository; a row owned by
// another tenant behaves exactly like a missing row.
type Event struct {
	ID           string
	ULID         string
	Title        string
	Description  string
	Venue        string
	Date         time.Time
	Price        float64
	MaxAttendees int
	OrgULID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateParams struct {
	Title        string
	Description  string
	Venue        string
	Date         time.Time
	Price        float64
	MaxAttendees int
	OrgULID      string
}

// UpdateParams carries partial updates; nil fields are left unchanged.
// The owning organization is not represented here and can never change.
type UpdateParams struct {
	Title        *string
	Description  *string
	Venue        *string
	Date         *time.Time
	Price        *float64
	MaxAttendees *int
}

type Repository interface {
	ListByOrg(ctx context.Context, orgULID string) ([]Event, error)
	ListUpcoming(ctx context.Context, orgULID string, from time.Time) ([]Event, error)
	GetByULID(ctx context.Context, orgULID, ulid string) (*Event, error)
	Create(ctx context.Context, params CreateParams) (*Event, error)
	Update(ctx context.Context, orgULID, ulid string, params UpdateParams) (*Event, error)
	SoftDelete(ctx context.Context, orgULID, ulid string) error
}
