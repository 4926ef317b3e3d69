package organizations

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("organization not found")
	ErrSlugTaken = errors.New("slug is already taken")
)

// Organization is the root tenant boundary. Every admin and event belongs
// to exactly one organization; no entity is ever shared across tenants.
type Organization struct {
	ID        string
	ULID      string
	Slug      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateParams struct {
	Slug string
	Name string
}

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	GetByULID(ctx context.Context, ulid string) (*Organization, error)
	Create(ctx context.Context, params CreateParams) (*Organization, error)
}
