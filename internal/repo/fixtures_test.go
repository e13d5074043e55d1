package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
	"github.com/travelops/operations/testutil"
)

// newTestRepos returns every repo bound to one transaction that is rolled
// back when the test finishes, plus a TxRunner nested in it as a savepoint.
func newTestRepos(t *testing.T) (repo.Repos, repo.TxRunner) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewRepos(tx), repo.NewTxRunner(tx)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func travelerFixture() domain.Traveler {
	t := domain.NewTraveler()
	t.Name = "Jane Doe"
	t.NumAdults = 2
	return t
}

// voucherFixture returns an unsaved voucher with a reservation number unique
// to this call, so fixtures never collide with rows from other tests.
func voucherFixture(travelerID uuid.UUID) domain.ServiceVoucher {
	end := date(2024, 1, 5)
	return domain.ServiceVoucher{
		TravelerID:              travelerID,
		ReservationNumber:       "R-" + uuid.NewString()[:8],
		HotelConfirmationNumber: "HC-9",
		TravelStartDate:         date(2024, 1, 1),
		TravelEndDate:           &end,
		HotelName:               "Grand Hotel",
		TransferType:            domain.TransferPrivate,
		MealPlan:                domain.MealBedAndBreakfast,
	}
}

func mustTraveler(t *testing.T, r repo.Repos) domain.Traveler {
	t.Helper()
	tr, err := r.Travelers.Create(context.Background(), travelerFixture())
	require.NoError(t, err)
	return tr
}

func mustVoucher(t *testing.T, r repo.Repos) domain.ServiceVoucher {
	t.Helper()
	v, err := r.Vouchers.Create(context.Background(), voucherFixture(mustTraveler(t, r).ID))
	require.NoError(t, err)
	return v
}

func mustItinerary(t *testing.T, r repo.Repos, voucherID uuid.UUID, day int) domain.Itinerary {
	t.Helper()
	it, err := r.Itineraries.Create(context.Background(), domain.Itinerary{
		ServiceVoucherID: voucherID,
		Day:              day,
		Date:             date(2024, 1, day),
	})
	require.NoError(t, err)
	return it
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, field, "fields: %v", ve.Fields)
}
