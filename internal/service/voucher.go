package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// VoucherService implements the service voucher aggregate: the voucher,
// its traveler, room allocations, and itinerary days with activities.
//
// Create and Update write the whole aggregate inside one transaction. Each
// fragment is validated immediately before it is written and the first
// failure aborts the transaction, so a rejected request never leaves a
// partially written voucher behind.
type VoucherService struct {
	repos repo.Repos
	tx    repo.TxRunner
}

// NewVoucherService constructs a VoucherService. repos serves reads and
// single-statement writes; tx runs the multi-table aggregate writes.
func NewVoucherService(repos repo.Repos, tx repo.TxRunner) *VoucherService {
	return &VoucherService{repos: repos, tx: tx}
}

// Create writes a new voucher together with its nested traveler, rooms, and
// itinerary tree, and returns the fully loaded result.
// Returns domain.ErrValidation (as *domain.ValidationError) when any
// fragment is invalid; field keys carry the fragment path.
func (s *VoucherService) Create(ctx context.Context, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error) {
	if p.Traveler == nil {
		return domain.ServiceVoucherDetail{}, fmt.Errorf("service.VoucherService.Create: %w", domain.Invalid("traveler", msgRequired))
	}

	var out domain.ServiceVoucherDetail
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		traveler := domain.NewTraveler()
		if err := applyTraveler(&traveler, *p.Traveler); err != nil {
			return withPrefix("traveler", err)
		}
		traveler, err := r.Travelers.Create(ctx, traveler)
		if err != nil {
			return withPrefix("traveler", err)
		}

		var v domain.ServiceVoucher
		if err := applyVoucher(&v, p); err != nil {
			return err
		}
		v.TravelerID = traveler.ID
		v, err = r.Vouchers.Create(ctx, v)
		if err != nil {
			return err
		}

		if p.RoomAllocations != nil {
			if err := createRooms(ctx, r, v.ID, *p.RoomAllocations); err != nil {
				return err
			}
		}
		if p.ItineraryItems != nil {
			if err := createItinerary(ctx, r, v.ID, *p.ItineraryItems); err != nil {
				return err
			}
		}

		out, err = loadDetail(ctx, r, v)
		return err
	})
	if err != nil {
		return domain.ServiceVoucherDetail{}, fmt.Errorf("service.VoucherService.Create: %w", err)
	}
	return out, nil
}

// Update applies a partial update to an existing voucher aggregate.
//
// A present traveler object is merged into the linked traveler in place.
// A present room_allocations or itinerary_items key replaces the whole
// collection (an empty list clears it); an absent key keeps it unchanged.
// Returns domain.ErrNotFound if the voucher does not exist.
func (s *VoucherService) Update(ctx context.Context, id uuid.UUID, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error) {
	var out domain.ServiceVoucherDetail
	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		v, err := r.Vouchers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Traveler != nil {
			traveler, err := r.Travelers.GetByID(ctx, v.TravelerID)
			if err != nil {
				return err
			}
			if err := applyTraveler(&traveler, *p.Traveler); err != nil {
				return withPrefix("traveler", err)
			}
			if _, err := r.Travelers.Update(ctx, traveler); err != nil {
				return withPrefix("traveler", err)
			}
		}

		if err := applyVoucher(&v, p); err != nil {
			return err
		}
		v, err = r.Vouchers.Update(ctx, v)
		if err != nil {
			return err
		}

		if p.RoomAllocations != nil {
			if _, err := r.Rooms.DeleteByVoucherID(ctx, v.ID); err != nil {
				return err
			}
			if err := createRooms(ctx, r, v.ID, *p.RoomAllocations); err != nil {
				return err
			}
		}
		if p.ItineraryItems != nil {
			if _, err := r.Itineraries.DeleteByVoucherID(ctx, v.ID); err != nil {
				return err
			}
			if err := createItinerary(ctx, r, v.ID, *p.ItineraryItems); err != nil {
				return err
			}
		}

		out, err = loadDetail(ctx, r, v)
		return err
	})
	if err != nil {
		return domain.ServiceVoucherDetail{}, fmt.Errorf("service.VoucherService.Update: %w", err)
	}
	return out, nil
}

// GetByID returns a fully loaded voucher.
// Returns domain.ErrNotFound if no voucher with that ID exists.
func (s *VoucherService) GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceVoucherDetail, error) {
	v, err := s.repos.Vouchers.GetByID(ctx, id)
	if err != nil {
		return domain.ServiceVoucherDetail{}, fmt.Errorf("service.VoucherService.GetByID: %w", err)
	}
	out, err := loadDetail(ctx, s.repos, v)
	if err != nil {
		return domain.ServiceVoucherDetail{}, fmt.Errorf("service.VoucherService.GetByID: %w", err)
	}
	return out, nil
}

// ListPaged returns one page of fully loaded vouchers and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VoucherService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucherDetail, int64, error) {
	vouchers, total, err := s.repos.Vouchers.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VoucherService.ListPaged: %w", err)
	}
	details, err := loadDetails(ctx, s.repos, vouchers)
	if err != nil {
		return nil, 0, fmt.Errorf("service.VoucherService.ListPaged: %w", err)
	}
	return details, total, nil
}

// Delete removes a voucher with its rooms and itinerary.
// Returns domain.ErrNotFound if the voucher does not exist.
func (s *VoucherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repos.Vouchers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.VoucherService.Delete: %w", err)
	}
	return nil
}

// AddRoom attaches one new room allocation to an existing voucher.
// Returns domain.ErrNotFound if the voucher does not exist and
// domain.ErrValidation if the allocation is invalid or its room type is
// already allocated on the voucher.
func (s *VoucherService) AddRoom(ctx context.Context, voucherID uuid.UUID, p domain.RoomAllocationPayload) (domain.RoomAllocation, error) {
	if _, err := s.repos.Vouchers.GetByID(ctx, voucherID); err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("service.VoucherService.AddRoom: %w", err)
	}

	ra := domain.NewRoomAllocation()
	if err := applyRoom(&ra, p); err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("service.VoucherService.AddRoom: %w", err)
	}
	ra.ServiceVoucherID = voucherID

	created, err := s.repos.Rooms.Create(ctx, ra)
	if err != nil {
		return domain.RoomAllocation{}, fmt.Errorf("service.VoucherService.AddRoom: %w", err)
	}
	return created, nil
}

// createRooms validates and inserts each room fragment in order.
func createRooms(ctx context.Context, r repo.Repos, voucherID uuid.UUID, rooms []domain.RoomAllocationPayload) error {
	for i, rp := range rooms {
		path := fmt.Sprintf("room_allocations[%d]", i)

		ra := domain.NewRoomAllocation()
		if err := applyRoom(&ra, rp); err != nil {
			return withPrefix(path, err)
		}
		ra.ServiceVoucherID = voucherID
		if _, err := r.Rooms.Create(ctx, ra); err != nil {
			return withPrefix(path, err)
		}
	}
	return nil
}

// createItinerary validates and inserts each itinerary day, then the
// activities nested inside it, before moving to the next day.
func createItinerary(ctx context.Context, r repo.Repos, voucherID uuid.UUID, items []domain.ItineraryPayload) error {
	for i, ip := range items {
		path := fmt.Sprintf("itinerary_items[%d]", i)

		var it domain.Itinerary
		if err := applyItinerary(&it, ip, true, false); err != nil {
			return withPrefix(path, err)
		}
		it.ServiceVoucherID = voucherID
		it, err := r.Itineraries.Create(ctx, it)
		if err != nil {
			return withPrefix(path, err)
		}

		if ip.Activities == nil {
			continue
		}
		for j, ap := range *ip.Activities {
			apath := fmt.Sprintf("%s.activities[%d]", path, j)

			a := domain.NewItineraryActivity()
			if err := applyActivity(&a, ap, true, false); err != nil {
				return withPrefix(apath, err)
			}
			a.ItineraryID = it.ID
			if _, err := r.Activities.Create(ctx, a); err != nil {
				return withPrefix(apath, err)
			}
		}
	}
	return nil
}

func loadDetail(ctx context.Context, r repo.Repos, v domain.ServiceVoucher) (domain.ServiceVoucherDetail, error) {
	details, err := loadDetails(ctx, r, []domain.ServiceVoucher{v})
	if err != nil {
		return domain.ServiceVoucherDetail{}, err
	}
	return details[0], nil
}

// loadDetails assembles vouchers with their travelers, rooms, and itinerary
// days in four queries regardless of how many vouchers are given.
func loadDetails(ctx context.Context, r repo.Repos, vouchers []domain.ServiceVoucher) ([]domain.ServiceVoucherDetail, error) {
	out := make([]domain.ServiceVoucherDetail, 0, len(vouchers))
	if len(vouchers) == 0 {
		return out, nil
	}

	voucherIDs := make([]uuid.UUID, 0, len(vouchers))
	travelerIDs := make([]uuid.UUID, 0, len(vouchers))
	seen := map[uuid.UUID]bool{}
	for _, v := range vouchers {
		voucherIDs = append(voucherIDs, v.ID)
		if !seen[v.TravelerID] {
			seen[v.TravelerID] = true
			travelerIDs = append(travelerIDs, v.TravelerID)
		}
	}

	travelers, err := r.Travelers.ListByIDs(ctx, travelerIDs)
	if err != nil {
		return nil, err
	}
	rooms, err := r.Rooms.ListByVoucherIDs(ctx, voucherIDs)
	if err != nil {
		return nil, err
	}
	days, err := r.Itineraries.ListByVoucherIDs(ctx, voucherIDs)
	if err != nil {
		return nil, err
	}
	dayIDs := make([]uuid.UUID, len(days))
	for i, d := range days {
		dayIDs[i] = d.ID
	}
	activities, err := r.Activities.ListByItineraryIDs(ctx, dayIDs)
	if err != nil {
		return nil, err
	}

	roomsByVoucher := map[uuid.UUID][]domain.RoomAllocation{}
	for _, ra := range rooms {
		roomsByVoucher[ra.ServiceVoucherID] = append(roomsByVoucher[ra.ServiceVoucherID], ra)
	}
	activitiesByDay := map[uuid.UUID][]domain.ItineraryActivity{}
	for _, a := range activities {
		activitiesByDay[a.ItineraryID] = append(activitiesByDay[a.ItineraryID], a)
	}
	daysByVoucher := map[uuid.UUID][]domain.ItineraryDay{}
	for _, d := range days {
		acts := activitiesByDay[d.ID]
		if acts == nil {
			acts = []domain.ItineraryActivity{}
		}
		daysByVoucher[d.ServiceVoucherID] = append(daysByVoucher[d.ServiceVoucherID], domain.ItineraryDay{Itinerary: d, Activities: acts})
	}

	for _, v := range vouchers {
		d := domain.ServiceVoucherDetail{
			ServiceVoucher: v,
			Traveler:       travelers[v.TravelerID],
			Rooms:          roomsByVoucher[v.ID],
			Itinerary:      daysByVoucher[v.ID],
		}
		if d.Rooms == nil {
			d.Rooms = []domain.RoomAllocation{}
		}
		if d.Itinerary == nil {
			d.Itinerary = []domain.ItineraryDay{}
		}
		out = append(out, d)
	}
	return out, nil
}
