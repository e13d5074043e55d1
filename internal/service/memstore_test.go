package service_test

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// memStore is an in-memory stand-in for the Postgres schema. It enforces the
// same unique keys, foreign keys, and ON DELETE CASCADE rules as the
// migrations, and its TxRunner restores a snapshot when the unit of work
// fails, so rollback behaviour can be asserted without a database.
type memStore struct {
	travelers   map[uuid.UUID]domain.Traveler
	vouchers    map[uuid.UUID]domain.ServiceVoucher
	rooms       map[uuid.UUID]domain.RoomAllocation
	itineraries map[uuid.UUID]domain.Itinerary
	activities  map[uuid.UUID]domain.ItineraryActivity
	hotels      map[uuid.UUID]domain.HotelVoucher

	// failOn makes the named write return the error once, simulating a
	// broken connection mid-transaction.
	failOn map[string]error

	now time.Time
}

func newMemStore() *memStore {
	return &memStore{
		travelers:   map[uuid.UUID]domain.Traveler{},
		vouchers:    map[uuid.UUID]domain.ServiceVoucher{},
		rooms:       map[uuid.UUID]domain.RoomAllocation{},
		itineraries: map[uuid.UUID]domain.Itinerary{},
		activities:  map[uuid.UUID]domain.ItineraryActivity{},
		hotels:      map[uuid.UUID]domain.HotelVoucher{},
		failOn:      map[string]error{},
		now:         time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) repos() repo.Repos {
	return repo.Repos{
		Travelers:     memTravelers{m},
		Vouchers:      memVouchers{m},
		Rooms:         memRooms{m},
		Itineraries:   memItineraries{m},
		Activities:    memActivities{m},
		HotelVouchers: memHotels{m},
	}
}

type memSnapshot struct {
	travelers   map[uuid.UUID]domain.Traveler
	vouchers    map[uuid.UUID]domain.ServiceVoucher
	rooms       map[uuid.UUID]domain.RoomAllocation
	itineraries map[uuid.UUID]domain.Itinerary
	activities  map[uuid.UUID]domain.ItineraryActivity
	hotels      map[uuid.UUID]domain.HotelVoucher
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) snapshot() memSnapshot {
	return memSnapshot{
		travelers:   cloneMap(m.travelers),
		vouchers:    cloneMap(m.vouchers),
		rooms:       cloneMap(m.rooms),
		itineraries: cloneMap(m.itineraries),
		activities:  cloneMap(m.activities),
		hotels:      cloneMap(m.hotels),
	}
}

func (m *memStore) restore(s memSnapshot) {
	m.travelers = s.travelers
	m.vouchers = s.vouchers
	m.rooms = s.rooms
	m.itineraries = s.itineraries
	m.activities = s.activities
	m.hotels = s.hotels
}

// WithinTx implements repo.TxRunner.
func (m *memStore) WithinTx(_ context.Context, fn func(repo.Repos) error) error {
	snap := m.snapshot()
	if err := fn(m.repos()); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

var _ repo.TxRunner = (*memStore)(nil)

func (m *memStore) fail(op string) error {
	if err, ok := m.failOn[op]; ok {
		delete(m.failOn, op)
		return err
	}
	return nil
}

func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

// rowCounts reports the number of rows per table, in migration order.
func (m *memStore) rowCounts() [5]int {
	return [5]int{len(m.travelers), len(m.vouchers), len(m.rooms), len(m.itineraries), len(m.activities)}
}

func page[T any](items []T, p domain.PaginationParams) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func idSet(ids []uuid.UUID) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = i
		}
	}
	return out
}

// ---- cascades -------------------------------------------------------------

func (m *memStore) deleteVoucher(id uuid.UUID) {
	delete(m.vouchers, id)
	m.deleteRoomsOf(id)
	m.deleteItinerariesOf(id)
}

func (m *memStore) deleteRoomsOf(voucherID uuid.UUID) int64 {
	var n int64
	for id, ra := range m.rooms {
		if ra.ServiceVoucherID == voucherID {
			delete(m.rooms, id)
			n++
		}
	}
	return n
}

func (m *memStore) deleteItinerary(id uuid.UUID) {
	delete(m.itineraries, id)
	for aid, a := range m.activities {
		if a.ItineraryID == id {
			delete(m.activities, aid)
		}
	}
}

func (m *memStore) deleteItinerariesOf(voucherID uuid.UUID) int64 {
	var n int64
	for id, it := range m.itineraries {
		if it.ServiceVoucherID == voucherID {
			m.deleteItinerary(id)
			n++
		}
	}
	return n
}

// ---- travelers -------------------------------------------------------------

type memTravelers struct{ m *memStore }

func (r memTravelers) Create(_ context.Context, t domain.Traveler) (domain.Traveler, error) {
	if err := r.m.fail("travelers.create"); err != nil {
		return domain.Traveler{}, err
	}
	t.ID = uuid.New()
	t.CreatedAt = r.m.tick()
	t.UpdatedAt = t.CreatedAt
	r.m.travelers[t.ID] = t
	return t, nil
}

func (r memTravelers) GetByID(_ context.Context, id uuid.UUID) (domain.Traveler, error) {
	t, ok := r.m.travelers[id]
	if !ok {
		return domain.Traveler{}, domain.ErrNotFound
	}
	return t, nil
}

func (r memTravelers) ListByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Traveler, error) {
	out := map[uuid.UUID]domain.Traveler{}
	for _, id := range ids {
		if t, ok := r.m.travelers[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (r memTravelers) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error) {
	all := make([]domain.Traveler, 0, len(r.m.travelers))
	for _, t := range r.m.travelers {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	return page(all, p), int64(len(all)), nil
}

func (r memTravelers) Update(_ context.Context, t domain.Traveler) (domain.Traveler, error) {
	if err := r.m.fail("travelers.update"); err != nil {
		return domain.Traveler{}, err
	}
	old, ok := r.m.travelers[t.ID]
	if !ok {
		return domain.Traveler{}, domain.ErrNotFound
	}
	t.CreatedAt = old.CreatedAt
	t.UpdatedAt = r.m.tick()
	r.m.travelers[t.ID] = t
	return t, nil
}

func (r memTravelers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.travelers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.travelers, id)
	for vid, v := range r.m.vouchers {
		if v.TravelerID == id {
			r.m.deleteVoucher(vid)
		}
	}
	return nil
}

// ---- service vouchers ------------------------------------------------------

type memVouchers struct{ m *memStore }

func (r memVouchers) check(v domain.ServiceVoucher) error {
	if _, ok := r.m.travelers[v.TravelerID]; !ok {
		return domain.Invalid("traveler", "Referenced traveler does not exist.")
	}
	for id, other := range r.m.vouchers {
		if id != v.ID && other.ReservationNumber == v.ReservationNumber {
			return domain.Invalid("reservation_number", "service voucher with this reservation number already exists.")
		}
	}
	return nil
}

func (r memVouchers) Create(_ context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error) {
	if err := r.m.fail("vouchers.create"); err != nil {
		return domain.ServiceVoucher{}, err
	}
	v.ID = uuid.New()
	if err := r.check(v); err != nil {
		return domain.ServiceVoucher{}, err
	}
	v.CreatedAt = r.m.tick()
	v.UpdatedAt = v.CreatedAt
	r.m.vouchers[v.ID] = v
	return v, nil
}

func (r memVouchers) GetByID(_ context.Context, id uuid.UUID) (domain.ServiceVoucher, error) {
	v, ok := r.m.vouchers[id]
	if !ok {
		return domain.ServiceVoucher{}, domain.ErrNotFound
	}
	return v, nil
}

func (r memVouchers) ListAll(_ context.Context) ([]domain.ServiceVoucher, error) {
	all := make([]domain.ServiceVoucher, 0, len(r.m.vouchers))
	for _, v := range r.m.vouchers {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].TravelStartDate.Equal(all[j].TravelStartDate) {
			return all[i].TravelStartDate.After(all[j].TravelStartDate)
		}
		return all[i].ReservationNumber < all[j].ReservationNumber
	})
	return all, nil
}

func (r memVouchers) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucher, int64, error) {
	all, _ := r.ListAll(ctx)
	return page(all, p), int64(len(all)), nil
}

func (r memVouchers) Update(_ context.Context, v domain.ServiceVoucher) (domain.ServiceVoucher, error) {
	if err := r.m.fail("vouchers.update"); err != nil {
		return domain.ServiceVoucher{}, err
	}
	old, ok := r.m.vouchers[v.ID]
	if !ok {
		return domain.ServiceVoucher{}, domain.ErrNotFound
	}
	if err := r.check(v); err != nil {
		return domain.ServiceVoucher{}, err
	}
	v.CreatedAt = old.CreatedAt
	v.UpdatedAt = r.m.tick()
	r.m.vouchers[v.ID] = v
	return v, nil
}

func (r memVouchers) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.vouchers[id]; !ok {
		return domain.ErrNotFound
	}
	r.m.deleteVoucher(id)
	return nil
}

// ---- room allocations ------------------------------------------------------

type memRooms struct{ m *memStore }

var roomOrder = map[domain.RoomType]int{
	domain.RoomSingle: 0, domain.RoomDouble: 1, domain.RoomTwin: 2, domain.RoomTriple: 3,
}

func (r memRooms) Create(_ context.Context, ra domain.RoomAllocation) (domain.RoomAllocation, error) {
	if err := r.m.fail("rooms.create"); err != nil {
		return domain.RoomAllocation{}, err
	}
	if _, ok := r.m.vouchers[ra.ServiceVoucherID]; !ok {
		return domain.RoomAllocation{}, domain.Invalid("service_voucher", "Referenced service voucher does not exist.")
	}
	for _, other := range r.m.rooms {
		if other.ServiceVoucherID == ra.ServiceVoucherID && other.RoomType == ra.RoomType {
			return domain.RoomAllocation{}, domain.Invalid(domain.NonFieldErrors, "The fields service_voucher, room_type must make a unique set.")
		}
	}
	ra.ID = uuid.New()
	r.m.rooms[ra.ID] = ra
	return ra, nil
}

func (r memRooms) ListByVoucherIDs(_ context.Context, voucherIDs []uuid.UUID) ([]domain.RoomAllocation, error) {
	pos := idSet(voucherIDs)
	out := []domain.RoomAllocation{}
	for _, ra := range r.m.rooms {
		if _, ok := pos[ra.ServiceVoucherID]; ok {
			out = append(out, ra)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if pi, pj := pos[out[i].ServiceVoucherID], pos[out[j].ServiceVoucherID]; pi != pj {
			return pi < pj
		}
		return roomOrder[out[i].RoomType] < roomOrder[out[j].RoomType]
	})
	return out, nil
}

func (r memRooms) DeleteByVoucherID(_ context.Context, voucherID uuid.UUID) (int64, error) {
	return r.m.deleteRoomsOf(voucherID), nil
}

// ---- itineraries -----------------------------------------------------------

type memItineraries struct{ m *memStore }

func (r memItineraries) check(it domain.Itinerary) error {
	if _, ok := r.m.vouchers[it.ServiceVoucherID]; !ok {
		return domain.Invalid("service_voucher", "Referenced service voucher does not exist.")
	}
	for id, other := range r.m.itineraries {
		if id != it.ID && other.ServiceVoucherID == it.ServiceVoucherID && other.Day == it.Day {
			return domain.Invalid(domain.NonFieldErrors, "The fields service_voucher, day must make a unique set.")
		}
	}
	return nil
}

func (r memItineraries) Create(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	if err := r.m.fail("itineraries.create"); err != nil {
		return domain.Itinerary{}, err
	}
	it.ID = uuid.New()
	if err := r.check(it); err != nil {
		return domain.Itinerary{}, err
	}
	it.CreatedAt = r.m.tick()
	it.UpdatedAt = it.CreatedAt
	r.m.itineraries[it.ID] = it
	return it, nil
}

func (r memItineraries) GetByID(_ context.Context, id uuid.UUID) (domain.Itinerary, error) {
	it, ok := r.m.itineraries[id]
	if !ok {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	return it, nil
}

func (r memItineraries) sorted(keep func(domain.Itinerary) bool, pos map[uuid.UUID]int) []domain.Itinerary {
	out := []domain.Itinerary{}
	for _, it := range r.m.itineraries {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceVoucherID != out[j].ServiceVoucherID {
			if pos != nil {
				return pos[out[i].ServiceVoucherID] < pos[out[j].ServiceVoucherID]
			}
			return out[i].ServiceVoucherID.String() < out[j].ServiceVoucherID.String()
		}
		return out[i].Day < out[j].Day
	})
	return out
}

func (r memItineraries) ListPaged(_ context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	all := r.sorted(func(it domain.Itinerary) bool {
		return voucherID == nil || it.ServiceVoucherID == *voucherID
	}, nil)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Day < all[j].Day })
	return page(all, p), int64(len(all)), nil
}

func (r memItineraries) ListByVoucherIDs(_ context.Context, voucherIDs []uuid.UUID) ([]domain.Itinerary, error) {
	pos := idSet(voucherIDs)
	return r.sorted(func(it domain.Itinerary) bool {
		_, ok := pos[it.ServiceVoucherID]
		return ok
	}, pos), nil
}

func (r memItineraries) Update(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	old, ok := r.m.itineraries[it.ID]
	if !ok {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	if err := r.check(it); err != nil {
		return domain.Itinerary{}, err
	}
	it.CreatedAt = old.CreatedAt
	it.UpdatedAt = r.m.tick()
	r.m.itineraries[it.ID] = it
	return it, nil
}

func (r memItineraries) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.itineraries[id]; !ok {
		return domain.ErrNotFound
	}
	r.m.deleteItinerary(id)
	return nil
}

func (r memItineraries) DeleteByVoucherID(_ context.Context, voucherID uuid.UUID) (int64, error) {
	return r.m.deleteItinerariesOf(voucherID), nil
}

// ---- activities ------------------------------------------------------------

type memActivities struct{ m *memStore }

func (r memActivities) Create(_ context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error) {
	if err := r.m.fail("activities.create"); err != nil {
		return domain.ItineraryActivity{}, err
	}
	if _, ok := r.m.itineraries[a.ItineraryID]; !ok {
		return domain.ItineraryActivity{}, domain.Invalid("itinerary", "Referenced itinerary does not exist.")
	}
	a.ID = uuid.New()
	a.CreatedAt = r.m.tick()
	a.UpdatedAt = a.CreatedAt
	r.m.activities[a.ID] = a
	return a, nil
}

func (r memActivities) GetByID(_ context.Context, id uuid.UUID) (domain.ItineraryActivity, error) {
	a, ok := r.m.activities[id]
	if !ok {
		return domain.ItineraryActivity{}, domain.ErrNotFound
	}
	return a, nil
}

func (r memActivities) sorted(keep func(domain.ItineraryActivity) bool) []domain.ItineraryActivity {
	out := []domain.ItineraryActivity{}
	for _, a := range r.m.activities {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ItineraryID != out[j].ItineraryID {
			return out[i].ItineraryID.String() < out[j].ItineraryID.String()
		}
		if ti, tj := out[i].Time.SinceMidnight(), out[j].Time.SinceMidnight(); ti != tj {
			return ti < tj
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r memActivities) ListPaged(_ context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error) {
	all := r.sorted(func(a domain.ItineraryActivity) bool {
		return itineraryID == nil || a.ItineraryID == *itineraryID
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time.SinceMidnight() < all[j].Time.SinceMidnight()
	})
	return page(all, p), int64(len(all)), nil
}

func (r memActivities) ListByItineraryIDs(_ context.Context, itineraryIDs []uuid.UUID) ([]domain.ItineraryActivity, error) {
	pos := idSet(itineraryIDs)
	return r.sorted(func(a domain.ItineraryActivity) bool {
		_, ok := pos[a.ItineraryID]
		return ok
	}), nil
}

func (r memActivities) Update(_ context.Context, a domain.ItineraryActivity) (domain.ItineraryActivity, error) {
	old, ok := r.m.activities[a.ID]
	if !ok {
		return domain.ItineraryActivity{}, domain.ErrNotFound
	}
	if _, ok := r.m.itineraries[a.ItineraryID]; !ok {
		return domain.ItineraryActivity{}, domain.Invalid("itinerary", "Referenced itinerary does not exist.")
	}
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = r.m.tick()
	r.m.activities[a.ID] = a
	return a, nil
}

func (r memActivities) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.activities[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.activities, id)
	return nil
}

// ---- hotel vouchers --------------------------------------------------------

type memHotels struct{ m *memStore }

func (r memHotels) Create(_ context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error) {
	h.ID = uuid.New()
	h.CreatedAt = r.m.tick()
	h.UpdatedAt = h.CreatedAt
	r.m.hotels[h.ID] = h
	return h, nil
}

func (r memHotels) GetByID(_ context.Context, id uuid.UUID) (domain.HotelVoucher, error) {
	h, ok := r.m.hotels[id]
	if !ok {
		return domain.HotelVoucher{}, domain.ErrNotFound
	}
	return h, nil
}

func (r memHotels) ListPaged(_ context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error) {
	all := make([]domain.HotelVoucher, 0, len(r.m.hotels))
	for _, h := range r.m.hotels {
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CheckInDate.After(all[j].CheckInDate) })
	return page(all, p), int64(len(all)), nil
}

func (r memHotels) Update(_ context.Context, h domain.HotelVoucher) (domain.HotelVoucher, error) {
	old, ok := r.m.hotels[h.ID]
	if !ok {
		return domain.HotelVoucher{}, domain.ErrNotFound
	}
	h.CreatedAt = old.CreatedAt
	h.UpdatedAt = r.m.tick()
	r.m.hotels[h.ID] = h
	return h, nil
}

func (r memHotels) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.m.hotels[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.m.hotels, id)
	return nil
}

var (
	_ repo.TravelerRepo          = memTravelers{}
	_ repo.ServiceVoucherRepo    = memVouchers{}
	_ repo.RoomAllocationRepo    = memRooms{}
	_ repo.ItineraryRepo         = memItineraries{}
	_ repo.ItineraryActivityRepo = memActivities{}
	_ repo.HotelVoucherRepo      = memHotels{}
)
