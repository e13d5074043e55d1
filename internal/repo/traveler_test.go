package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/operations/internal/domain"
)

func TestTravelerRepo_CreateAndGet(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()

	email := "jane@example.com"
	input := travelerFixture()
	input.ContactEmail = &email

	created, err := r.Travelers.Create(ctx, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID, "ID should be DB-generated")
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, 2, created.NumAdults)
	require.NotNil(t, created.ContactEmail)
	assert.Equal(t, email, *created.ContactEmail)
	assert.Nil(t, created.ContactPhone)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.Travelers.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestTravelerRepo_GetByID_NotFound(t *testing.T) {
	r, _ := newTestRepos(t)

	_, err := r.Travelers.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelerRepo_Update(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	tr := mustTraveler(t, r)

	phone := "+1 555 0100"
	tr.Name = "Jane Roe"
	tr.NumInfants = 1
	tr.ContactPhone = &phone

	updated, err := r.Travelers.Update(ctx, tr)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	assert.Equal(t, 1, updated.NumInfants)
	require.NotNil(t, updated.ContactPhone)
	assert.Equal(t, phone, *updated.ContactPhone)

	tr.ID = uuid.New()
	_, err = r.Travelers.Update(ctx, tr)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelerRepo_ListByIDs(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	a := mustTraveler(t, r)
	b := mustTraveler(t, r)

	got, err := r.Travelers.ListByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, a.ID)
	assert.Contains(t, got, b.ID)

	empty, err := r.Travelers.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTravelerRepo_ListPaged(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	for range 3 {
		mustTraveler(t, r)
	}

	page, total, err := r.Travelers.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.GreaterOrEqual(t, total, int64(3))
}

func TestTravelerRepo_Delete_CascadesToVouchers(t *testing.T) {
	r, _ := newTestRepos(t)
	ctx := context.Background()
	v := mustVoucher(t, r)
	mustItinerary(t, r, v.ID, 1)

	require.NoError(t, r.Travelers.Delete(ctx, v.TravelerID))

	_, err := r.Vouchers.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	days, err := r.Itineraries.ListByVoucherIDs(ctx, []uuid.UUID{v.ID})
	require.NoError(t, err)
	assert.Empty(t, days)

	assert.ErrorIs(t, r.Travelers.Delete(ctx, v.TravelerID), domain.ErrNotFound)
}
