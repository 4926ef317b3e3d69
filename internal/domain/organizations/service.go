package organizations

import (
	"context"
	"strings"

	"github.com/gatherly/server/internal/domain/ids"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ResolveSlug maps a public-facing organization slug to the tenant it
// names. A malformed slug resolves the same way as an unknown one so the
// public surface never distinguishes the two.
func (s *Service) ResolveSlug(ctx context.Context, slug string) (*Organization, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if err := ids.ValidateSlug(slug); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) GetByULID(ctx context.Context, ulid string) (*Organization, error) {
	return s.repo.GetByULID(ctx, ulid)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Organization, error) {
	params.Slug = strings.TrimSpace(strings.ToLower(params.Slug))
	if err := ids.ValidateSlug(params.Slug); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}
