package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// TravelerService implements business logic for standalone Traveler operations.
type TravelerService struct {
	travelers repo.TravelerRepo
}

// NewTravelerService constructs a TravelerService backed by the provided repo.
func NewTravelerService(travelers repo.TravelerRepo) *TravelerService {
	return &TravelerService{travelers: travelers}
}

// Create validates the payload over the column defaults and persists it.
// Returns domain.ErrValidation if input violates business rules.
func (s *TravelerService) Create(ctx context.Context, p domain.TravelerPayload) (domain.Traveler, error) {
	t := domain.NewTraveler()
	if err := applyTraveler(&t, p); err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Create: %w", err)
	}
	result, err := s.travelers.Create(ctx, t)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns domain.ErrNotFound if no traveler with that ID exists.
func (s *TravelerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Traveler, error) {
	result, err := s.travelers.GetByID(ctx, id)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of travelers ordered by name and the total count.
func (s *TravelerService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error) {
	travelers, total, err := s.travelers.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelerService.ListPaged: %w", err)
	}
	if travelers == nil {
		travelers = []domain.Traveler{}
	}
	return travelers, total, nil
}

// Replace overwrites every writable field of an existing traveler. Keys
// absent from the payload fall back to their defaults.
func (s *TravelerService) Replace(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error) {
	existing, err := s.travelers.GetByID(ctx, id)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Replace: %w", err)
	}
	t := domain.NewTraveler()
	t.ID, t.CreatedAt = existing.ID, existing.CreatedAt
	return s.save(ctx, "service.TravelerService.Replace", t, p)
}

// Patch applies only the keys present in the payload.
func (s *TravelerService) Patch(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error) {
	existing, err := s.travelers.GetByID(ctx, id)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("service.TravelerService.Patch: %w", err)
	}
	return s.save(ctx, "service.TravelerService.Patch", existing, p)
}

func (s *TravelerService) save(ctx context.Context, op string, t domain.Traveler, p domain.TravelerPayload) (domain.Traveler, error) {
	if err := applyTraveler(&t, p); err != nil {
		return domain.Traveler{}, fmt.Errorf("%s: %w", op, err)
	}
	result, err := s.travelers.Update(ctx, t)
	if err != nil {
		return domain.Traveler{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Delete removes a traveler and, through the foreign key cascade, every
// service voucher that references it.
// Returns domain.ErrNotFound if the traveler does not exist.
func (s *TravelerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.travelers.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TravelerService.Delete: %w", err)
	}
	return nil
}
