// Package repo contains all database access logic for the travel operations API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here: only SQL, type mapping, and translation of
// constraint violations into domain errors.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/travelops/operations/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner is satisfied by *pgxpool.Pool and pgx.Tx (which opens a savepoint).
type beginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Travelers     TravelerRepo
	Vouchers      ServiceVoucherRepo
	Rooms         RoomAllocationRepo
	Itineraries   ItineraryRepo
	Activities    ItineraryActivityRepo
	HotelVouchers HotelVoucherRepo
}

// NewRepos binds every repository to db.
func NewRepos(db db) Repos {
	return Repos{
		Travelers:     NewTravelerRepo(db),
		Vouchers:      NewServiceVoucherRepo(db),
		Rooms:         NewRoomAllocationRepo(db),
		Itineraries:   NewItineraryRepo(db),
		Activities:    NewItineraryActivityRepo(db),
		HotelVouchers: NewHotelVoucherRepo(db),
	}
}

// TxRunner runs a unit of work inside one database transaction.
// The transaction commits when fn returns nil and rolls back on any error
// (or panic), so a failed unit of work leaves no rows behind.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(Repos) error) error
}

type pgTxRunner struct {
	db beginner
}

// NewTxRunner constructs a TxRunner backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx so the unit of
// work runs in a savepoint that the test rolls back.
func NewTxRunner(db beginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithinTx(ctx context.Context, fn func(Repos) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(NewRepos(tx))
	})
}

// Postgres SQLSTATE codes translated by translateErr.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type constraintField struct {
	field   string
	message string
}

// uniqueConstraints maps unique constraint names to the field reported
// back to the client.
var uniqueConstraints = map[string]constraintField{
	"service_vouchers_reservation_number_key": {"reservation_number", "service voucher with this reservation number already exists."},
	"room_allocations_voucher_room_type_key":  {domain.NonFieldErrors, "The fields service_voucher, room_type must make a unique set."},
	"itineraries_voucher_day_key":             {domain.NonFieldErrors, "The fields service_voucher, day must make a unique set."},
}

// foreignKeys maps foreign key constraint names to the referencing field.
var foreignKeys = map[string]constraintField{
	"service_vouchers_traveler_id_fkey":        {"traveler", "Referenced traveler does not exist."},
	"room_allocations_service_voucher_id_fkey": {"service_voucher", "Referenced service voucher does not exist."},
	"itineraries_service_voucher_id_fkey":      {"service_voucher", "Referenced service voucher does not exist."},
	"itinerary_activities_itinerary_id_fkey":   {"itinerary", "Referenced itinerary does not exist."},
}

// translateErr converts pgx errors into domain errors: no rows becomes
// domain.ErrNotFound and known constraint violations become a
// *domain.ValidationError naming the offending field. Anything else is
// returned unchanged.
func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	var table map[string]constraintField
	switch pgErr.Code {
	case codeUniqueViolation:
		table = uniqueConstraints
	case codeForeignKeyViolation:
		table = foreignKeys
	default:
		return err
	}
	if cf, ok := table[pgErr.ConstraintName]; ok {
		return domain.Invalid(cf.field, cf.message)
	}
	return err
}

// countRows runs a SELECT count(*) query and returns the total.
func countRows(ctx context.Context, db db, q string, args ...any) (int64, error) {
	var total int64
	if err := db.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// uuidStrings renders ids for an @ids::uuid[] parameter.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// collect drains rows through scan, wrapping errors with op.
func collect[T any](rows pgx.Rows, op string, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return out, nil
}
