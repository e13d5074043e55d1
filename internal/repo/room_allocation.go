package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/travelops/operations/internal/domain"
)

// RoomAllocationRepo defines the persistence operations for RoomAllocations.
// Allocations are never edited in place: the aggregate write replaces the
// whole set, and add_room appends one.
type RoomAllocationRepo interface {
	// Create inserts an allocation. A second allocation of the same room type
	// on one voucher yields a *domain.ValidationError.
	Create(ctx context.Context, ra domain.RoomAllocation) (domain.RoomAllocation, error)

	// ListByVoucherIDs returns the allocations of every given voucher, ordered
	// by voucher then room type (SGL, DBL, TWN, TPL).
	ListByVoucherIDs(ctx context.Context, voucherIDs []uuid.UUID) ([]domain.RoomAllocation, error)

	// DeleteByVoucherID removes every allocation of a voucher and returns the
	// number of rows deleted.
	DeleteByVoucherID(ctx context.Context, voucherID uuid.UUID) (int64, error)
}

// pgRoomAllocationRepo is the Postgres implementation of RoomAllocationRepo.
type pgRoomAllocationRepo struct {
	db db
}

// NewRoomAllocationRepo constructs a RoomAllocationRepo backed by the provided db connection.
func NewRoomAllocationRepo(db db) RoomAllocationRepo {
	return &pgRoomAllocationRepo{db: db}
}

func (r *pgRoomAllocationRepo) Create(ctx context.Context, ra domain.RoomAllocation) (domain.RoomAllocation, error) {
	const q = `
		INSERT INTO room_allocations (service_voucher_id, room_type, quantity)
		VALUES (@service_voucher_id, @room_type, @quantity)
		RETURNING id, service_voucher_id, room_type, quantity`

	args := pgx.NamedArgs{
		"service_voucher_id": ra.ServiceVoucherID,
		"room_type":          string(ra.RoomType),
		"quantity":           ra.Quantity,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRoomAllocation(row)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("repo.RoomAllocationRepo.Create: %w", translateErr(err))
	}
	return result, nil
}

func (r *pgRoomAllocationRepo) ListByVoucherIDs(ctx context.Context, voucherIDs []uuid.UUID) ([]domain.RoomAllocation, error) {
	if len(voucherIDs) == 0 {
		return []domain.RoomAllocation{}, nil
	}

	const q = `
		SELECT id, service_voucher_id, room_type, quantity
		FROM room_allocations
		WHERE service_voucher_id = ANY(@ids::uuid[])
		ORDER BY service_voucher_id, array_position(ARRAY['SGL', 'DBL', 'TWN', 'TPL']::varchar[], room_type)`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidStrings(voucherIDs)})
	if err != nil {
		return nil, fmt.Errorf("repo.RoomAllocationRepo.ListByVoucherIDs: %w", err)
	}
	return collect(rows, "repo.RoomAllocationRepo.ListByVoucherIDs", scanRoomAllocation)
}

func (r *pgRoomAllocationRepo) DeleteByVoucherID(ctx context.Context, voucherID uuid.UUID) (int64, error) {
	const q = `DELETE FROM room_allocations WHERE service_voucher_id = @service_voucher_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"service_voucher_id": voucherID})
	if err != nil {
		return 0, fmt.Errorf("repo.RoomAllocationRepo.DeleteByVoucherID: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRoomAllocation(s scanner) (domain.RoomAllocation, error) {
	var (
		ra        domain.RoomAllocation
		id        pgtype.UUID
		voucherID pgtype.UUID
		roomType  string
	)
	if err := s.Scan(&id, &voucherID, &roomType, &ra.Quantity); err != nil {
		return domain.RoomAllocation{}, err
	}
	ra.ID = uuid.UUID(id.Bytes)
	ra.ServiceVoucherID = uuid.UUID(voucherID.Bytes)
	ra.RoomType = domain.RoomType(roomType)
	return ra, nil
}
