package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itinerary days.
type ItineraryRepo interface {
	// Create inserts a new itinerary day. A duplicate day on the same voucher
	// yields a *domain.ValidationError; an unknown voucher likewise.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary day by its UUID primary key.
	// Returns domain.ErrNotFound if no itinerary with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// ListPaged returns one page of itinerary days ordered by day then voucher,
	// optionally restricted to a single voucher, and the total count.
	ListPaged(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)

	// ListByVoucherIDs returns the itinerary days of every given voucher,
	// ordered by voucher then day.
	ListByVoucherIDs(ctx context.Context, voucherIDs []uuid.UUID) ([]domain.Itinerary, error)

	// Update overwrites the mutable fields of an itinerary day.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary day and its activities (FK cascade).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByVoucherID removes every itinerary day of a voucher, cascading
	// to their activities, and returns the number of days deleted.
	DeleteByVoucherID(ctx context.Context, voucherID uuid.UUID) (int64, error)
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, service_voucher_id, day, date, created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (service_voucher_id, day, date)
		VALUES (@service_voucher_id, @day, @date)
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"service_voucher_id": it.ServiceVoucherID,
		"day":                it.Day,
		"date":               it.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListPaged filters on voucherID when it is non-nil.
func (r *pgItineraryRepo) ListPaged(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	const where = ` WHERE (@service_voucher_id::uuid IS NULL OR service_voucher_id = @service_voucher_id::uuid)`
	const q = `SELECT ` + itineraryColumns + ` FROM itineraries` + where + `
		ORDER BY day, service_voucher_id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"service_voucher_id": voucherID, // nil becomes NULL, disabling the filter
		"limit":              p.Limit,
		"offset":             p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: %w", err)
	}
	items, err := collect(rows, "repo.ItineraryRepo.ListPaged", scanItinerary)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.db, `SELECT count(*) FROM itineraries`+where,
		pgx.NamedArgs{"service_voucher_id": voucherID})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryRepo.ListPaged: count: %w", err)
	}
	return items, total, nil
}

func (r *pgItineraryRepo) ListByVoucherIDs(ctx context.Context, voucherIDs []uuid.UUID) ([]domain.Itinerary, error) {
	if len(voucherIDs) == 0 {
		return []domain.Itinerary{}, nil
	}

	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE service_voucher_id = ANY(@ids::uuid[])
		ORDER BY service_voucher_id, day`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(voucherIDs)})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByVoucherIDs: %w", err)
	}
	return collect(rows, "repo.ItineraryRepo.ListByVoucherIDs", scanItinerary)
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET service_voucher_id = @service_voucher_id,
		    day                = @day,
		    date               = @date,
		    updated_at         = now()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	args := pgx.NamedArgs{
		"id":                 it.ID,
		"service_voucher_id": it.ServiceVoucherID,
		"day":                it.Day,
		"date":               it.Date,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgItineraryRepo) DeleteByVoucherID(ctx context.Context, voucherID uuid.UUID) (int64, error) {
	const q = `DELETE FROM itineraries WHERE service_voucher_id = @service_voucher_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"service_voucher_id": voucherID})
	if err != nil {
		return 0, fmt.Errorf("repo.ItineraryRepo.DeleteByVoucherID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id        pgtype.UUID
		voucherID pgtype.UUID
		date      pgtype.Date
	)
	if err := s.Scan(&id, &voucherID, &it.Day, &date, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return domain.Itinerary{}, err
	}
	it.ID = uuid.UUID(id.Bytes)
	it.ServiceVoucherID = uuid.UUID(voucherID.Bytes)
	it.Date = date.Time
	return it, nil
}
