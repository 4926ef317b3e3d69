package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ admins.Repository = (*AdminRepository)(nil)

type AdminRepository struct {
	pool *pgxpool.Pool
}

const adminColumns = `a.id, a.ulid, a.name, a.email, a.password_hash, o.ulid, a.created_at, a.updated_at`

func (r *AdminRepository) ListByOrg(ctx context.Context, orgULID string) ([]admins.Admin, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+adminColumns+`
  FROM admins a
  JOIN organizations o ON o.id = a.organization_id
 WHERE o.ulid = $1
 ORDER BY a.created_at, a.ulid
`, orgULID)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []admins.Admin
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		out = append(out, *admin)
	}
	return out, rows.Err()
}

func (r *AdminRepository) GetByULID(ctx context.Context, orgULID, ulid string) (*admins.Admin, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+adminColumns+`
  FROM admins a
  JOIN organizations o ON o.id = a.organization_id
 WHERE o.ulid = $1 AND a.ulid = $2
`, orgULID, ulid)

	admin, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admins.Admin, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+adminColumns+`
  FROM admins a
  JOIN organizations o ON o.id = a.organization_id
 WHERE a.email = $1
`, strings.ToLower(email))

	admin, err := scanAdmin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return admin, nil
}

func (r *AdminRepository) Create(ctx context.Context, params admins.CreateParams) (*admins.Admin, error) {
	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate ulid: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO admins (ulid, name, email, password_hash, organization_id)
SELECT $1, $2, $3, $4, o.id
  FROM organizations o
 WHERE o.ulid = $5
RETURNING id, ulid, name, email, password_hash, $5, created_at, updated_at
`, ulid, params.Name, params.Email, params.PasswordHash, params.OrgULID)

	admin, err := scanAdmin(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, admins.ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrNotFound
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// Update applies only the non-nil fields, COALESCE leaves the rest alone.
func (r *AdminRepository) Update(ctx context.Context, orgULID, ulid string, params admins.UpdateParams) (*admins.Admin, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE admins a
   SET name          = COALESCE($3, a.name),
       email         = COALESCE($4, a.email),
       password_hash = COALESCE($5, a.password_hash),
       updated_at    = now()
  FROM organizations o
 WHERE o.id = a.organization_id AND o.ulid = $1 AND a.ulid = $2
RETURNING a.id, a.ulid, a.name, a.email, a.password_hash, o.ulid, a.created_at, a.updated_at
`, orgULID, ulid, params.Name, params.Email, params.PasswordHash)

	admin, err := scanAdmin(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, admins.ErrEmailTaken
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrNotFound
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return admin, nil
}

func (r *AdminRepository) Delete(ctx context.Context, orgULID, ulid string) error {
	tag, err := r.pool.Exec(ctx, `
DELETE FROM admins a
 USING organizations o
 WHERE o.id = a.organization_id AND o.ulid = $1 AND a.ulid = $2
`, orgULID, ulid)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return admins.ErrNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (*admins.Admin, error) {
	var admin admins.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.ULID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.OrgULID,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &admin, nil
}
