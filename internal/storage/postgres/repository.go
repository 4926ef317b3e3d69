package postgres

import (
	"fmt"

	"github.com/gatherly/server/internal/domain/admins"
	"github.com/gatherly/server/internal/domain/attendees"
	"github.com/gatherly/server/internal/domain/events"
	"github.com/gatherly/server/internal/domain/organizations"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository bundles the per-entity repositories over one shared pool.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Organizations() organizations.Repository {
	return &OrganizationRepository{pool: r.pool}
}

func (r *Repository) Admins() admins.Repository {
	return &AdminRepository{pool: r.pool}
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool}
}

func (r *Repository) Attendees() attendees.Repository {
	return &AttendeeRepository{pool: r.pool}
}
