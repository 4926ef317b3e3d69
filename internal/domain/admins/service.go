package admins

import (
	"context"
	"errors"
	"strings"

	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/gatherly/server/internal/sanitize"
	"github.com/gatherly/server/internal/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// Authenticate checks an email and password pair and returns the matching
// admin. Unknown email and wrong password collapse into the same error so
// the response never reveals which half failed.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	email = normalizeEmail(email)
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.CheckPassword(admin.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

func (s *Service) List(ctx context.Context, orgULID string) ([]Admin, error) {
	return s.repo.ListByOrg(ctx, orgULID)
}

func (s *Service) Get(ctx context.Context, orgULID, ulid string) (*Admin, error) {
	if err := ids.ValidateULID(ulid); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByULID(ctx, orgULID, ulid)
}

func (s *Service) Create(ctx context.Context, orgULID string, input CreateInput) (*Admin, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, CreateParams{
		Name:         sanitize.Text(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		OrgULID:      orgULID,
	})
}

func (s *Service) Update(ctx context.Context, orgULID, ulid string, input UpdateInput) (*Admin, error) {
	if err := ids.ValidateULID(ulid); err != nil {
		return nil, ErrNotFound
	}
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if input.Email != nil {
		normalized := normalizeEmail(*input.Email)
		input.Email = &normalized
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	params := UpdateParams{}
	if input.Name != nil {
		clean := sanitize.Text(*input.Name)
		params.Name = &clean
	}
	if input.Email != nil {
		// Uniqueness excludes the admin being updated so resubmitting the
		// current address is not an error.
		existing, err := s.repo.GetByEmail(ctx, *input.Email)
		switch {
		case err == nil && existing.ULID != ulid:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, ErrNotFound):
			return nil, err
		}
		params.Email = input.Email
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		params.PasswordHash = &hash
	}

	return s.repo.Update(ctx, orgULID, ulid, params)
}

func (s *Service) Delete(ctx context.Context, orgULID, ulid string) error {
	if err := ids.ValidateULID(ulid); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, orgULID, ulid)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
