package events

import (
	"context"
	"strings"
	"time"

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

// CreateInput is the client-facing payload for creating an event. The
// owning organization always comes from the authenticated principal; any
// client-supplied organization value is ignored by construction.
type CreateInput struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Venue        string    `json:"venue" validate:"required"`
	Date         time.Time `json:"date" validate:"required"`
	Price        float64   `json:"price" validate:"gte=0"`
	MaxAttendees int       `json:"max_attendees" validate:"required,gte=1"`
}

type UpdateInput struct {
	Title        *string    `json:"title" validate:"omitempty,min=1"`
	Description  *string    `json:"description"`
	Venue        *string    `json:"venue" validate:"omitempty,min=1"`
	Date         *time.Time `json:"date"`
	Price        *float64   `json:"price" validate:"omitempty,gte=0"`
	MaxAttendees *int       `json:"max_attendees" validate:"omitempty,gte=1"`
}

func (s *Service) List(ctx context.Context, orgULID string) ([]Event, error) {
	return s.repo.ListByOrg(ctx, orgULID)
}

func (s *Service) Create(ctx context.Context, orgULID string, input CreateInput) (*Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Venue = strings.TrimSpace(input.Venue)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, CreateParams{
		Title:        sanitize.Text(input.Title),
		Description:  sanitize.HTML(input.Description),
		Venue:        sanitize.Text(input.Venue),
		Date:         input.Date,
		Price:        input.Price,
		MaxAttendees: input.MaxAttendees,
		OrgULID:      orgULID,
	})
}

func (s *Service) Get(ctx context.Context, orgULID, ulid string) (*Event, error) {
	if err := ids.ValidateULID(ulid); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.GetByULID(ctx, orgULID, ulid)
}

func (s *Service) Update(ctx context.Context, orgULID, ulid string, input UpdateInput) (*Event, error) {
	if err := ids.ValidateULID(ulid); err != nil {
		return nil, ErrNotFound
	}
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
	}
	if input.Venue != nil {
		trimmed := strings.TrimSpace(*input.Venue)
		input.Venue = &trimmed
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	params := UpdateParams{
		Date:         input.Date,
		Price:        input.Price,
		MaxAttendees: input.MaxAttendees,
	}
	if input.Title != nil {
		clean := sanitize.Text(*input.Title)
		params.Title = &clean
	}
	if input.Description != nil {
		clean := sanitize.HTML(*input.Description)
		params.Description = &clean
	}
	if input.Venue != nil {
		clean := sanitize.Text(*input.Venue)
		params.Venue = &clean
	}

	return s.repo.Update(ctx, orgULID, ulid, params)
}

func (s *Service) Delete(ctx context.Context, orgULID, ulid string) error {
	if err := ids.ValidateULID(ulid); err != nil {
		return ErrNotFound
	}
	return s.repo.SoftDelete(ctx, orgULID, ulid)
}
