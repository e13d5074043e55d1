package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// TravelerRepo defines the persistence operations for Travelers.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a fake.
type TravelerRepo interface {
	// Create inserts a new traveler and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, t domain.Traveler) (domain.Traveler, error)

	// GetByID retrieves a single traveler by its UUID primary key.
	// Returns domain.ErrNotFound if no traveler with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Traveler, error)

	// ListByIDs returns the travelers with the given IDs keyed by ID.
	// Missing IDs are simply absent from the map.
	ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Traveler, error)

	// ListPaged returns one page of travelers ordered by name and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error)

	// Update overwrites the mutable fields of an existing traveler and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, t domain.Traveler) (domain.Traveler, error)

	// Delete removes a traveler and, through the foreign key cascade, every
	// service voucher issued to them. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTravelerRepo is the Postgres implementation of TravelerRepo.
type pgTravelerRepo struct {
	db db
}

// NewTravelerRepo constructs a TravelerRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelerRepo(db db) TravelerRepo {
	return &pgTravelerRepo{db: db}
}

const travelerColumns = `id, name, num_adults, num_infants, contact_email, contact_phone, created_at, updated_at`

// Create inserts a new traveler row and returns the full persisted record.
func (r *pgTravelerRepo) Create(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	const q = `
		INSERT INTO travelers (name, num_adults, num_infants, contact_email, contact_phone)
		VALUES (@name, @num_adults, @num_infants, @contact_email, @contact_phone)
		RETURNING ` + travelerColumns

	row := r.db.QueryRow(ctx, q, travelerArgs(t))
	result, err := scanTraveler(row)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

// GetByID retrieves a traveler by primary key.
func (r *pgTravelerRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Traveler, error) {
	const q = `SELECT ` + travelerColumns + ` FROM travelers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTraveler(row)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListByIDs loads several travelers in one round trip.
func (r *pgTravelerRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Traveler, error) {
	out := make(map[uuid.UUID]domain.Traveler, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const q = `SELECT ` + travelerColumns + ` FROM travelers WHERE id = ANY(@ids::uuid[])`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.TravelerRepo.ListByIDs: %w", err)
	}
	travelers, err := collect(rows, "repo.TravelerRepo.ListByIDs", scanTraveler)
	if err != nil {
		return nil, err
	}
	for _, t := range travelers {
		out[t.ID] = t
	}
	return out, nil
}

// ListPaged returns one page of travelers ordered by name, then id.
func (r *pgTravelerRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error) {
	const q = `
		SELECT ` + travelerColumns + `
		FROM travelers
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelerRepo.ListPaged: %w", err)
	}
	travelers, err := collect(rows, "repo.TravelerRepo.ListPaged", scanTraveler)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.db, `SELECT count(*) FROM travelers`)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelerRepo.ListPaged: count: %w", err)
	}
	return travelers, total, nil
}

// Update overwrites the mutable fields of a traveler and returns the updated record.
func (r *pgTravelerRepo) Update(ctx context.Context, t domain.Traveler) (domain.Traveler, error) {
	const q = `
		UPDATE travelers
		SET name          = @name,
		    num_adults    = @num_adults,
		    num_infants   = @num_infants,
		    contact_email = @contact_email,
		    contact_phone = @contact_phone,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + travelerColumns

	args := travelerArgs(t)
	args["id"] = t.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTraveler(row)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("repo.TravelerRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

// Delete removes a traveler by primary key.
func (r *pgTravelerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM travelers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TravelerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TravelerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func travelerArgs(t domain.Traveler) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":          t.Name,
		"num_adults":    t.NumAdults,
		"num_infants":   t.NumInfants,
		"contact_email": t.ContactEmail, // nil becomes NULL
		"contact_phone": t.ContactPhone,
	}
}

// scanTraveler maps a single database row into a domain.Traveler.
func scanTraveler(s scanner) (domain.Traveler, error) {
	var (
		t  domain.Traveler
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.NumAdults, &t.NumInfants, &t.ContactEmail, &t.ContactPhone, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Traveler{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
