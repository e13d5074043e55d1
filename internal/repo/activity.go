package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// ItineraryActivityRepo defines the persistence operations for ItineraryActivities.
type ItineraryActivityRepo interface {
	// Create inserts a new activity. An unknown itinerary yields a
	// *domain.ValidationError on the itinerary field.
	Create(ctx context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error)

	// ListPaged returns one page of activities ordered by time then itinerary,
	// optionally restricted to one itinerary day, and the total count.
	ListPaged(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error)

	// ListByItineraryIDs returns the activities of every given itinerary day,
	// ordered by itinerary then time.
	ListByItineraryIDs(ctx context.Context, itineraryIDs []uuid.UUID) ([]domain.ItineraryActivity, error)

	// Update overwrites the mutable fields of an activity.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error)

	// Delete removes an activity. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItineraryActivityRepo is the Postgres implementation of ItineraryActivityRepo.
type pgItineraryActivityRepo struct {
	db db
}

// NewItineraryActivityRepo constructs an ItineraryActivityRepo backed by the provided db connection.
func NewItineraryActivityRepo(db db) ItineraryActivityRepo {
	return &pgItineraryActivityRepo{db: db}
}

const activityColumns = `id, itinerary_id, time, activity_type, description, location, notes, created_at, updated_at`

func (r *pgItineraryActivityRepo) Create(ctx context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error) {
	const q = `
		INSERT INTO itinerary_activities (itinerary_id, time, activity_type, description, location, notes)
		VALUES (@itinerary_id, @time, @activity_type, @description, @location, @notes)
		RETURNING ` + activityColumns

	row := r.db.QueryRow(ctx, q, activityArgs(a))
	result, err := scanActivity(row)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("repo.ItineraryActivityRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgItineraryActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error) {
	const q = `SELECT ` + activityColumns + ` FROM itinerary_activities WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("repo.ItineraryActivityRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListPaged filters on itineraryID when it is non-nil.
func (r *pgItineraryActivityRepo) ListPaged(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error) {
	const where = ` WHERE (@itinerary_id::uuid IS NULL OR itinerary_id = @itinerary_id::uuid)`
	const q = `SELECT ` + activityColumns + ` FROM itinerary_activities` + where + `
		ORDER BY time, itinerary_id, id
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{
		"itinerary_id": itineraryID,
		"limit":        p.Limit,
		"offset":       p.Offset(),
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryActivityRepo.ListPaged: %w", err)
	}
	items, err := collect(rows, "repo.ItineraryActivityRepo.ListPaged", scanActivity)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.db, `SELECT count(*) FROM itinerary_activities`+where,
		pgx.NamedArgs{"itinerary_id": itineraryID})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ItineraryActivityRepo.ListPaged: count: %w", err)
	}
	return items, total, nil
}

func (r *pgItineraryActivityRepo) ListByItineraryIDs(ctx context.Context, itineraryIDs []uuid.UUID) ([]domain.ItineraryActivity, error) {
	if len(itineraryIDs) == 0 {
		return []domain.ItineraryActivity{}, nil
	}

	const q = `
		SELECT ` + activityColumns + `
		FROM itinerary_activities
		WHERE itinerary_id = ANY(@ids::uuid[])
		ORDER BY itinerary_id, time, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(itineraryIDs)})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryActivityRepo.ListByItineraryIDs: %w", err)
	}
	return collect(rows, "repo.ItineraryActivityRepo.ListByItineraryIDs", scanActivity)
}

func (r *pgItineraryActivityRepo) Update(ctx context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error) {
	const q = `
		UPDATE itinerary_activities
		SET itinerary_id  = @itinerary_id,
		    time          = @time,
		    activity_type = @activity_type,
		    description   = @description,
		    location      = @location,
		    notes         = @notes,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	args := activityArgs(a)
	args["id"] = a.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("repo.ItineraryActivityRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgItineraryActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itinerary_activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func activityArgs(a domain.ItineraryActivity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"itinerary_id":  a.ItineraryID,
		"time":          pgtype.Time{Microseconds: a.Time.SinceMidnight().Microseconds(), Valid: true},
		"activity_type": string(a.ActivityType),
		"description":   a.Description,
		"location":      a.Location,
		"notes":         a.Notes,
	}
}

// scanActivity maps a single database row into a domain.ItineraryActivity.
// TIME columns arrive as microseconds since midnight.
func scanActivity(s scanner) (domain.ItineraryActivity, error) {
	var (
		a            domain.ItineraryActivity
		id           pgtype.UUID
		itineraryID  pgtype.UUID
		tod          pgtype.Time
		activityType string
	)
	err := s.Scan(&id, &itineraryID, &tod, &activityType, &a.Description, &a.Location, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.ItineraryActivity{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	a.ItineraryID = uuid.UUID(itineraryID.Bytes)
	a.Time = domain.TimeOfDayFromDuration(time.Duration(tod.Microseconds) * time.Microsecond)
	a.ActivityType = domain.ActivityType(activityType)
	return a, nil
}
