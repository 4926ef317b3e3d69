package admins

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Admin is an organization staff account. Email addresses are unique
// across the whole system, not per organization.
type Admin struct {
	ID           string
	ULID         string
	Name         string
	Email        string
	PasswordHash string
	OrgULID      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateParams struct {
	Name         string
	Email        string
	PasswordHash string
	OrgULID      string
}

// UpdateParams carries partial updates; nil fields are left unchanged.
type UpdateParams struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type Repository interface {
	ListByOrg(ctx context.Context, orgULID string) ([]Admin, error)
	GetByULID(ctx context.Context, orgULID, ulid string) (*Admin, error)
	// GetByEmail is unscoped; it backs login, which happens before any
	// organization is known.
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Create(ctx context.Context, params CreateParams) (*Admin, error)
	Update(ctx context.Context, orgULID, ulid string, params UpdateParams) (*Admin, error)
	Delete(ctx context.Context, orgULID, ulid string) error
}
