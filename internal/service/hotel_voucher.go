package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// HotelVoucherService implements business logic for standalone hotel vouchers.
type HotelVoucherService struct {
	hotels repo.HotelVoucherRepo
}

// NewHotelVoucherService constructs a HotelVoucherService backed by the provided repo.
func NewHotelVoucherService(hotels repo.HotelVoucherRepo) *HotelVoucherService {
	return &HotelVoucherService{hotels: hotels}
}

func (s *HotelVoucherService) Create(ctx context.Context, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	h := domain.NewHotelVoucher()
	if err := applyHotelVoucher(&h, p); err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("service.HotelVoucherService.Create: %w", err)
	}
	result, err := s.hotels.Create(ctx, h)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("service.HotelVoucherService.Create: %w", err)
	}
	return result, nil
}

func (s *HotelVoucherService) GetByID(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error) {
	result, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("service.HotelVoucherService.GetByID: %w", err)
	}
	return result, nil
}

func (s *HotelVoucherService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error) {
	hotels, total, err := s.hotels.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.HotelVoucherService.ListPaged: %w", err)
	}
	if hotels == nil {
		hotels = []domain.HotelVoucher{}
	}
	return hotels, total, nil
}

// Replace overwrites every writable field; absent keys fall back to defaults.
func (s *HotelVoucherService) Replace(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	existing, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("service.HotelVoucherService.Replace: %w", err)
	}
	h := domain.NewHotelVoucher()
	h.ID, h.CreatedAt = existing.ID, existing.CreatedAt
	return s.save(ctx, "service.HotelVoucherService.Replace", h, p)
}

// Patch applies only the keys present in the payload.
func (s *HotelVoucherService) Patch(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	existing, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("service.HotelVoucherService.Patch: %w", err)
	}
	return s.save(ctx, "service.HotelVoucherService.Patch", existing, p)
}

func (s *HotelVoucherService) save(ctx context.Context, op string, h domain.HotelVoucher, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	if err := applyHotelVoucher(&h, p); err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := s.hotels.Update(ctx, h)
	if err != nil {
		return domain.HotelVoucher{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *HotelVoucherService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.hotels.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.HotelVoucherService.Delete: %w", err)
	}
	return nil
}
