package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// HotelVoucherRepo defines the persistence operations for standalone HotelVouchers.
type HotelVoucherRepo interface {
	Create(ctx context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error)

	// GetByID returns domain.ErrNotFound if no hotel voucher with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error)

	// ListPaged returns one page ordered by check-in date descending and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error)

	// Update returns domain.ErrNotFound if the hotel voucher does not exist.
	Update(ctx context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error)

	// Delete returns domain.ErrNotFound if the hotel voucher does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgHotelVoucherRepo struct {
	db db
}

// NewHotelVoucherRepo constructs a HotelVoucherRepo backed by the provided db connection.
func NewHotelVoucherRepo(db db) HotelVoucherRepo {
	return &pgHotelVoucherRepo{db: db}
}

const hotelVoucherColumns = `
	id, hotel_name, hotel_address, guest_name, check_in_date, check_out_date,
	room_type, number_of_rooms, confirmation_number, special_requests,
	created_at, updated_at`

func (r *pgHotelVoucherRepo) Create(ctx context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error) {
	const q = `
		INSERT INTO hotel_vouchers (
			hotel_name, hotel_address, guest_name, check_in_date, check_out_date,
			room_type, number_of_rooms, confirmation_number, special_requests)
		VALUES (
			@hotel_name, @hotel_address, @guest_name, @check_in_date, @check_out_date,
			@room_type, @number_of_rooms, @confirmation_number, @special_requests)
		RETURNING ` + hotelVoucherColumns

	row := r.db.QueryRow(ctx, q, hotelVoucherArgs(h))
	result, err := scanHotelVoucher(row)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("repo.HotelVoucherRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgHotelVoucherRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error) {
	const q = `SELECT ` + hotelVoucherColumns + ` FROM hotel_vouchers WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanHotelVoucher(row)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("repo.HotelVoucherRepo.GetByID: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgHotelVoucherRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error) {
	const q = `
		SELECT ` + hotelVoucherColumns + `
		FROM hotel_vouchers
		ORDER BY check_in_date DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.HotelVoucherRepo.ListPaged: %w", err)
	}
	items, err := collect(rows, "repo.HotelVoucherRepo.ListPaged", scanHotelVoucher)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.db, `SELECT count(*) FROM hotel_vouchers`)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.HotelVoucherRepo.ListPaged: count: %w", err)
	}
	return items, total, nil
}

func (r *pgHotelVoucherRepo) Update(ctx context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error) {
	const q = `
		UPDATE hotel_vouchers
		SET hotel_name          = @hotel_name,
		    hotel_address       = @hotel_address,
		    guest_name          = @guest_name,
		    check_in_date       = @check_in_date,
		    check_out_date      = @check_out_date,
		    room_type           = @room_type,
		    number_of_rooms     = @number_of_rooms,
		    confirmation_number = @confirmation_number,
		    special_requests    = @special_requests,
		    updated_at          = now()
		WHERE id = @id
		RETURNING ` + hotelVoucherColumns

	args := hotelVoucherArgs(h)
	args["id"] = h.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanHotelVoucher(row)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("repo.HotelVoucherRepo.Update: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgHotelVoucherRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM hotel_vouchers WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.HotelVoucherRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.HotelVoucherRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func hotelVoucherArgs(h domain.HotelVoucher) pgx.NamedArgs {
	return pgx.NamedArgs{
		"hotel_name":          h.HotelName,
		"hotel_address":       h.HotelAddress,
		"guest_name":          h.GuestName,
		"check_in_date":       h.CheckInDate,
		"check_out_date":      h.CheckOutDate,
		"room_type":           string(h.RoomType),
		"number_of_rooms":     h.NumberOfRooms,
		"confirmation_number": h.ConfirmationNumber,
		"special_requests":    h.SpecialRequests,
	}
}

func scanHotelVoucher(s scanner) (domain.HotelVoucher, error) {
	var (
		h        domain.HotelVoucher
		id       pgtype.UUID
		checkIn  pgtype.Date
		checkOut pgtype.Date
		roomType string
	)
	err := s.Scan(
		&id, &h.HotelName, &h.HotelAddress, &h.GuestName, &checkIn, &checkOut,
		&roomType, &h.NumberOfRooms, &h.ConfirmationNumber, &h.SpecialRequests,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return domain.HotelVoucher{}, err
	}
	h.ID = uuid.UUID(id.Bytes)
	h.CheckInDate = checkIn.Time
	h.CheckOutDate = checkOut.Time
	h.RoomType = domain.RoomType(roomType)
	return h, nil
}
