package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/ids"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ attendees.Repository = (*AttendeeRepository)(nil)

type AttendeeRepository struct {
	pool *pgxpool.Pool
}

// ListByOrg returns attendees of the organization's live events only;
// soft-deleted events drop off the roster with their registrations.
func (r *AttendeeRepository) ListByOrg(ctx context.Context, orgULID string) ([]attendees.Attendee, error) {
	rows, err := r.pool.Query(ctx, `
SELECT a.id, a.ulid, a.name, a.email, a.phone, e.ulid, a.created_at
  FROM attendees a
  JOIN events e ON e.id = a.event_id AND e.deleted_at IS NULL
  JOIN organizations o ON o.id = e.organization_id
 WHERE o.ulid = $1
 ORDER BY a.created_at, a.ulid
`, orgULID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var out []attendees.Attendee
	for rows.Next() {
		attendee, err := scanAttendee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		out = append(out, *attendee)
	}
	return out, rows.Err()
}

func (r *AttendeeRepository) CreateForEvent(ctx context.Context, eventULID string, params attendees.CreateParams) (*attendees.Attendee, error) {
	ulid, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("generate ulid: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO attendees (ulid, name, email, phone, event_id)
SELECT $1, $2, $3, $4, e.id
  FROM events e
 WHERE e.ulid = $5 AND e.deleted_at IS NULL
RETURNING id, ulid, name, email, phone, $5, created_at
`, ulid, params.Name, params.Email, params.Phone, eventULID)

	attendee, err := scanAttendee(row)
	if err != nil {
		// The event was deleted between lookup and insert.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("create attendee: %w", err)
	}
	return attendee, nil
}

func (r *AttendeeRepository) CountForEvent(ctx context.Context, eventULID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
SELECT count(*)
  FROM attendees a
  JOIN events e ON e.id = a.event_id
 WHERE e.ulid = $1
`, eventULID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return count, nil
}

func scanAttendee(row pgx.Row) (*attendees.Attendee, error) {
	var attendee attendees.Attendee
	if err := row.Scan(
		&attendee.ID,
		&attendee.ULID,
		&attendee.Name,
		&attendee.Email,
		&attendee.Phone,
		&attendee.EventULID,
		&attendee.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &attendee, nil
}
