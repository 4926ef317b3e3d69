package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/ids"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ organizations.Repository = (*OrganizationRepository)(nil)

type OrganizationRepository struct {
	pool *pgxpool.Pool
}

const organizationColumns = `o.id, o.ulid, o.slug, o.name, o.created_at, o.updated_at`

func (r *OrganizationRepository) GetBySlug(ctx context.Context, slug string) (*organizations.Organization, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+organizationColumns+`
  FROM organizations o
 WHERE o.slug = $1
`, slug)

	org, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organizations.ErrNotFound
		}
		return nil, fmt.Errorf("get organization by slug: %w", err)
	}
	return org, nil
}

func (r *OrganizationRepository) GetByULID(ctx context.Context, ulid string) (*organizations.Organization, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+organizationColumns+`
  FROM organizations o
 WHERE o.ulid = $1
`, ulid)

	org, err := scanOrganization(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, organizations.ErrNotFound
		}
		return nil, fmt.Errorf("get organization by ulid: %w", err)
	}
	return org, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, params organizations.CreateParams) (*organizations.Organization, error) {
	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate ulid: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO organizations (ulid, slug, name)
VALUES ($1, $2, $3)
RETURNING id, ulid, slug, name, created_at, updated_at
`, ulid, params.Slug, params.Name)

	org, err := scanOrganization(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, organizations.ErrSlugTaken
		}
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

func scanOrganization(row pgx.Row) (*organizations.Organization, error) {
	var org organizations.Organization
	if err := row.Scan(
		&org.ID,
		&org.ULID,
		&org.Slug,
		&org.Name,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}
