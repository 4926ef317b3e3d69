package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `e.id, e.ulid, e.title, e.description, e.venue, e.date, e.price, e.max_attendees, o.ulid, e.created_at, e.updated_at`

func (r *EventRepository) ListByOrg(ctx context.Context, orgULID string) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN organizations o ON o.id = e.organization_id
 WHERE o.ulid = $1 AND e.deleted_at IS NULL
 ORDER BY e.date, e.ulid
`, orgULID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListUpcoming(ctx context.Context, orgULID string, from time.Time) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN organizations o ON o.id = e.organization_id
 WHERE o.ulid = $1 AND e.deleted_at IS NULL AND e.date >= $2
 ORDER BY e.date, e.ulid
`, orgULID, from)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) GetByULID(ctx context.Context, orgULID, ulid string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+eventColumns+`
  FROM events e
  JOIN organizations o ON o.id = e.organization_id
 WHERE o.ulid = $1 AND e.ulid = $2 AND e.deleted_at IS NULL
`, orgULID, ulid)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Create(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate ulid: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO events (ulid, title, description, venue, date, price, max_attendees, organization_id)
SELECT $1, $2, $3, $4, $5, $6, $7, o.id
  FROM organizations o
 WHERE o.ulid = $8
RETURNING id, ulid, title, description, venue, date, price, max_attendees, $8, created_at, updated_at
`, ulid, params.Title, textOrNil(params.Description), params.Venue,
		params.Date, params.Price, params.MaxAttendees, params.OrgULID)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Update applies only the non-nil fields, COALESCE leaves the rest alone.
func (r *EventRepository) Update(ctx context.Context, orgULID, ulid string, params events.UpdateParams) (*events.Event, error) {
	// Clearing the description needs an explicit NULL, which COALESCE
	// cannot express, so an empty write maps to NULL in the CASE below.
	row := r.pool.QueryRow(ctx, `
UPDATE events e
   SET title         = COALESCE($3, e.title),
       description   = CASE WHEN $4::text IS NULL THEN e.description WHEN $4 = '' THEN NULL ELSE $4 END,
       venue         = COALESCE($5, e.venue),
       date          = COALESCE($6, e.date),
       price         = COALESCE($7, e.price),
       max_attendees = COALESCE($8, e.max_attendees),
       updated_at    = now()
  FROM organizations o
 WHERE o.id = e.organization_id AND o.ulid = $1 AND e.ulid = $2 AND e.deleted_at IS NULL
RETURNING e.id, e.ulid, e.title, e.description, e.venue, e.date, e.price, e.max_attendees, o.ulid, e.created_at, e.updated_at
`, orgULID, ulid, params.Title, params.Description, params.Venue, params.Date, params.Price, params.MaxAttendees)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) SoftDelete(ctx context.Context, orgULID, ulid string) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE events e
   SET deleted_at = now(), updated_at = now()
  FROM organizations o
 WHERE o.id = e.organization_id AND o.ulid = $1 AND e.ulid = $2 AND e.deleted_at IS NULL
`, orgULID, ulid)
	if err != nil {
		return fmt.Errorf("soft delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func collectEvents(rows pgx.Rows) ([]events.Event, error) {
	var out []events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, *event)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	var description *string
	if err := row.Scan(
		&event.ID,
		&event.ULID,
		&event.Title,
		&description,
		&event.Venue,
		&event.Date,
		&event.Price,
		&event.MaxAttendees,
		&event.OrgULID,
		&event.CreatedAt,
		&event.UpdatedAt,
	); err != nil {
		return nil, err
	}
	event.Description = derefString(description)
	return &event, nil
}
