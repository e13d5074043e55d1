package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// ActivityService implements the standalone itinerary-activity endpoints.
type ActivityService struct {
	itineraries repo.ItineraryRepo
	activities  repo.ItineraryActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(itineraries repo.ItineraryRepo, activities repo.ItineraryActivityRepo) *ActivityService {
	return &ActivityService{itineraries: itineraries, activities: activities}
}

// Create validates the activity, verifies the parent day exists, then persists.
// An unknown itinerary is reported as a validation error on itinerary.
func (s *ActivityService) Create(ctx context.Context, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	a := domain.NewItineraryActivity()
	if err := applyActivity(&a, p, true, true); err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := s.checkItinerary(ctx, a.ItineraryID); err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns domain.ErrNotFound if no activity with that ID exists.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error) {
	result, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of activities, optionally restricted to a
// single itinerary day, and the total count.
func (s *ActivityService) ListPaged(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error) {
	activities, total, err := s.activities.ListPaged(ctx, itineraryID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ActivityService.ListPaged: %w", err)
	}
	if activities == nil {
		activities = []domain.ItineraryActivity{}
	}
	return activities, total, nil
}

// Replace overwrites every writable field of an existing activity.
func (s *ActivityService) Replace(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	existing, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.Replace: %w", err)
	}
	a := domain.NewItineraryActivity()
	a.ID, a.CreatedAt = existing.ID, existing.CreatedAt
	return s.save(ctx, "service.ActivityService.Replace", a, p, true)
}

// Patch applies only the keys present in the payload.
func (s *ActivityService) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	existing, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("service.ActivityService.Patch: %w", err)
	}
	return s.save(ctx, "service.ActivityService.Patch", existing, p, false)
}

func (s *ActivityService) save(ctx context.Context, op string, a domain.ItineraryActivity, p domain.ActivityPayload, required bool) (domain.ItineraryActivity, error) {
	if err := applyActivity(&a, p, required, true); err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("%s: %w", op, err)
	}
	if p.Itinerary != nil {
		if err := s.checkItinerary(ctx, a.ItineraryID); err != nil {
			return domain.ItineraryActivity{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	result, err := s.activities.Update(ctx, a)
	if err != nil {
		return domain.ItineraryActivity{}, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Delete returns domain.ErrNotFound if the activity does not exist.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

func (s *ActivityService) checkItinerary(ctx context.Context, id uuid.UUID) error {
	_, err := s.itineraries.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Invalid("itinerary", fmt.Sprintf("Invalid pk %q - object does not exist.", id))
	}
	return err
}
