package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/service"
)

func newActivityService(store *memStore) *service.ActivityService {
	r := store.repos()
	return service.NewActivityService(r.Itineraries, r.Activities)
}

func TestActivityService_Create_DefaultsToOther(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)

	got, err := svc.Create(context.Background(), domain.ActivityPayload{
		Itinerary:   ptr(voucher.Itinerary[0].ID.String()),
		Time:        ptr("18:45:30"),
		Description: ptr("Dinner"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ActivityOther, got.ActivityType)
	assert.Equal(t, domain.TimeOfDay{Hour: 18, Minute: 45, Second: 30}, got.Time)
}

func TestActivityService_Create_Invalid(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)

	_, err := svc.Create(context.Background(), domain.ActivityPayload{
		Itinerary:    ptr(voucher.Itinerary[0].ID.String()),
		ActivityType: ptr("PARTY"),
	})

	requireFieldError(t, err, "time")
	requireFieldError(t, err, "activity_type")
	requireFieldError(t, err, "description")
}

func TestActivityService_Create_MalformedItineraryID(t *testing.T) {
	store, _ := seededStore(t)
	svc := newActivityService(store)

	_, err := svc.Create(context.Background(), domain.ActivityPayload{
		Itinerary:   ptr("nope"),
		Time:        ptr("09:00"),
		Description: ptr("Walk"),
	})

	requireFieldError(t, err, "itinerary")
}

func TestActivityService_Create_UnknownItinerary(t *testing.T) {
	store, _ := seededStore(t)
	svc := newActivityService(store)

	_, err := svc.Create(context.Background(), domain.ActivityPayload{
		Itinerary:   ptr(uuid.NewString()),
		Time:        ptr("09:00"),
		Description: ptr("Walk"),
	})

	requireFieldError(t, err, "itinerary")
}

func TestActivityService_Patch(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)
	act := voucher.Itinerary[0].Activities[0]

	got, err := svc.Patch(context.Background(), act.ID, domain.ActivityPayload{Notes: ptr("Late arrival")})

	require.NoError(t, err)
	assert.Equal(t, "Late arrival", got.Notes)
	assert.Equal(t, act.Time, got.Time)
	assert.Equal(t, domain.ActivityCheckIn, got.ActivityType)
}

func TestActivityService_Replace_ResetsType(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)
	act := voucher.Itinerary[0].Activities[0]

	got, err := svc.Replace(context.Background(), act.ID, domain.ActivityPayload{
		Itinerary:   ptr(act.ItineraryID.String()),
		Time:        ptr("11:00"),
		Description: ptr("Free time"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ActivityOther, got.ActivityType)
	assert.Equal(t, "11:00:00", got.Time.String())
}

func TestActivityService_ListPaged_FiltersByItinerary(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)
	dayID := voucher.Itinerary[0].ID

	got, total, err := svc.ListPaged(context.Background(), &dayID, domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, got, 1)

	other := uuid.New()
	got, total, err = svc.ListPaged(context.Background(), &other, domain.NewPaginationParams(nil, nil))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, got)
}

func TestActivityService_Delete(t *testing.T) {
	store, voucher := seededStore(t)
	svc := newActivityService(store)

	require.NoError(t, svc.Delete(context.Background(), voucher.Itinerary[0].Activities[0].ID))
	assert.Equal(t, [5]int{1, 1, 1, 1, 0}, store.rowCounts())

	err := svc.Delete(context.Background(), voucher.Itinerary[0].Activities[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
