package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// ServiceVoucherRepo defines the persistence operations for ServiceVouchers.
// Only the voucher row itself is handled here; rooms and itinerary rows have
// their own repos and are assembled by the service layer.
type ServiceVoucherRepo interface {
	// Create inserts a new voucher and returns the persisted record.
	// A duplicate reservation number yields a *domain.ValidationError.
	Create(ctx context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error)

	// GetByID retrieves a single voucher by its UUID primary key.
	// Returns domain.ErrNotFound if no voucher with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceVoucher, error)

	// ListPaged returns one page of vouchers, most recent travel start first,
	// and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucher, int64, error)

	// ListAll returns every voucher ordered like ListPaged.
	ListAll(ctx context.Context) ([]domain.ServiceVoucher, error)

	// Update overwrites the mutable fields of an existing voucher and returns
	// the updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error)

	// Delete removes a voucher together with its rooms and itinerary (FK cascade).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgServiceVoucherRepo is the Postgres implementation of ServiceVoucherRepo.
type pgServiceVoucherRepo struct {
	db db
}

// NewServiceVoucherRepo constructs a ServiceVoucherRepo backed by the provided db connection.
func NewServiceVoucherRepo(db db) ServiceVoucherRepo {
	return &pgServiceVoucherRepo{db: db}
}

const voucherColumns = `
	id, traveler_id, reservation_number, hotel_confirmation_number,
	travel_start_date, travel_end_date, hotel_name, transfer_type, meal_plan,
	inclusions, arrival_details, departure_details, meeting_point,
	created_at, updated_at`

const voucherOrder = `ORDER BY travel_start_date DESC, reservation_number`

// Create inserts a new voucher row and returns the full persisted record.
func (r *pgServiceVoucherRepo) Create(ctx context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error) {
	const q = `
		INSERT INTO service_vouchers (
			traveler_id, reservation_number, hotel_confirmation_number,
			travel_start_date, travel_end_date, hotel_name, transfer_type, meal_plan,
			inclusions, arrival_details, departure_details, meeting_point)
		VALUES (
			@traveler_id, @reservation_number, @hotel_confirmation_number,
			@travel_start_date, @travel_end_date, @hotel_name, @transfer_type, @meal_plan,
			@inclusions, @arrival_details, @departure_details, @meeting_point)
		RETURNING ` + voucherColumns

	row := r.db.QueryRow(ctx, q, voucherArgs(v))
	result, err := scanVoucher(row)
	if err != nil {
		return domain.ServiceVoucher{}, fmt.Errorf("repo.ServiceVoucherRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

// GetByID retrieves a voucher by primary key.
func (r *pgServiceVoucherRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceVoucher, error) {
	const q = `SELECT ` + voucherColumns + ` FROM service_vouchers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanVoucher(row)
	if err != nil {
		return domain.ServiceVoucher{}, fmt.Errorf("repo.ServiceVoucherRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

// ListPaged returns one page of vouchers and the total count.
func (r *pgServiceVoucherRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucher, int64, error) {
	const q = `SELECT ` + voucherColumns + ` FROM service_vouchers ` + voucherOrder + ` LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ServiceVoucherRepo.ListPaged: %w", err)
	}
	vouchers, err := collect(rows, "repo.ServiceVoucherRepo.ListPaged", scanVoucher)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.db, `SELECT count(*) FROM service_vouchers`)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.ServiceVoucherRepo.ListPaged: count: %w", err)
	}
	return vouchers, total, nil
}

// ListAll returns every voucher.
func (r *pgServiceVoucherRepo) ListAll(ctx context.Context) ([]domain.ServiceVoucher, error) {
	const q = `SELECT ` + voucherColumns + ` FROM service_vouchers ` + voucherOrder

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ServiceVoucherRepo.ListAll: %w", err)
	}
	return collect(rows, "repo.ServiceVoucherRepo.ListAll", scanVoucher)
}

// Update overwrites the mutable fields of a voucher and returns the updated record.
func (r *pgServiceVoucherRepo) Update(ctx context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error) {
	const q = `
		UPDATE service_vouchers
		SET traveler_id               = @traveler_id,
		    reservation_number        = @reservation_number,
		    hotel_confirmation_number = @hotel_confirmation_number,
		    travel_start_date         = @travel_start_date,
		    travel_end_date           = @travel_end_date,
		    hotel_name                = @hotel_name,
		    transfer_type             = @transfer_type,
		    meal_plan                 = @meal_plan,
		    inclusions                = @inclusions,
		    arrival_details           = @arrival_details,
		    departure_details         = @departure_details,
		    meeting_point             = @meeting_point,
		    updated_at                = now()
		WHERE id = @id
		RETURNING ` + voucherColumns

	args := voucherArgs(v)
	args["id"] = v.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanVoucher(row)
	if err != nil {
		return domain.ServiceVoucher{}, fmt.Errorf("repo.ServiceVoucherRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

// Delete removes a voucher by primary key.
func (r *pgServiceVoucherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM service_vouchers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ServiceVoucherRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ServiceVoucherRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func voucherArgs(v domain.ServiceVoucher) pgx.NamedArgs {
	return pgx.NamedArgs{
		"traveler_id":               v.TravelerID,
		"reservation_number":        v.ReservationNumber,
		"hotel_confirmation_number": v.HotelConfirmationNumber,
		"travel_start_date":         v.TravelStartDate,
		"travel_end_date":           v.TravelEndDate, // nil becomes NULL
		"hotel_name":                v.HotelName,
		"transfer_type":             string(v.TransferType),
		"meal_plan":                 string(v.MealPlan),
		"inclusions":                v.Inclusions,
		"arrival_details":           v.ArrivalDetails,
		"departure_details":         v.DepartureDetails,
		"meeting_point":             v.MeetingPoint,
	}
}

// scanVoucher maps a single database row into a domain.ServiceVoucher.
// It handles the UUID and nullable travel_end_date conversions.
func scanVoucher(s scanner) (domain.ServiceVoucher, error) {
	var (
		v          domain.ServiceVoucher
		id         pgtype.UUID
		travelerID pgtype.UUID
		startDate  pgtype.Date
		endDate    pgtype.Date
		transfer   string
		meal       string
	)
	err := s.Scan(
		&id, &travelerID, &v.ReservationNumber, &v.HotelConfirmationNumber,
		&startDate, &endDate, &v.HotelName, &transfer, &meal,
		&v.Inclusions, &v.ArrivalDetails, &v.DepartureDetails, &v.MeetingPoint,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return domain.ServiceVoucher{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	v.TravelerID = uuid.UUID(travelerID.Bytes)
	v.TravelStartDate = startDate.Time
	if endDate.Valid {
		ed := endDate.Time
		v.TravelEndDate = &ed
	}
	v.TransferType = domain.TransferType(transfer)
	v.MealPlan = domain.MealPlan(meal)
	return v, nil
}
