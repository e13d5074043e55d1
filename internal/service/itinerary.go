package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// ItineraryService implements the standalone itinerary-day endpoints.
// It holds the voucher repo because writing a day requires verifying the
// parent voucher exists. Nested activities in the payload are ignored here;
// they are only written through the voucher aggregate.
type ItineraryService struct {
	vouchers    repo.ServiceVoucherRepo
	itineraries repo.ItineraryRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(vouchers repo.ServiceVoucherRepo, itineraries repo.ItineraryRepo) *ItineraryService {
	return &ItineraryService{vouchers: vouchers, itineraries: itineraries}
}

// Create validates the day, verifies the parent voucher exists, then persists.
// An unknown voucher is reported as a validation error on service_voucher.
func (s *ItineraryService) Create(ctx context.Context, p domain.ItineraryPayload) (domain.Itinerary, error) {
	var it domain.Itinerary
	if err := applyItinerary(&it, p, true, true); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	if err := s.checkVoucher(ctx, it.ServiceVoucherID); err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	result, err := s.itineraries.Create(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns domain.ErrNotFound if no itinerary day with that ID exists.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	result, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of itinerary days, optionally restricted to a
// single voucher, and the total count.
func (s *ItineraryService) ListPaged(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	days, total, err := s.itineraries.ListPaged(ctx, voucherID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ItineraryService.ListPaged: %w", err)
	}
	if days == nil {
		days = []domain.Itinerary{}
	}
	return days, total, nil
}

// Replace overwrites every writable field of an existing day.
func (s *ItineraryService) Replace(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error) {
	existing, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Replace: %w", err)
	}
	it := domain.Itinerary{ID: existing.ID, CreatedAt: existing.CreatedAt}
	return s.save(ctx, "service.ItineraryService.Replace", it, p, true)
}

// Patch applies only the keys present in the payload.
func (s *ItineraryService) Patch(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error) {
	existing, err := s.itineraries.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Patch: %w", err)
	}
	return s.save(ctx, "service.ItineraryService.Patch", existing, p, false)
}

func (s *ItineraryService) save(ctx context.Context, op string, it domain.Itinerary, p domain.ItineraryPayload, required bool) (domain.Itinerary, error) {
	if err := applyItinerary(&it, p, required, true); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%s: %w", op, err)
	}
	if p.ServiceVoucher != nil {
		if err := s.checkVoucher(ctx, it.ServiceVoucherID); err != nil {
			return domain.Itinerary{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	result, err := s.itineraries.Update(ctx, it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Delete removes a day and its activities.
// Returns domain.ErrNotFound if the day does not exist.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.itineraries.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

func (s *ItineraryService) checkVoucher(ctx context.Context, id uuid.UUID) error {
	_, err := s.vouchers.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("service_voucher", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
	}
	return err
}
