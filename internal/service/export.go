package service

import (
	"context"
	"fmt"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/repo"
)

// ExportService assembles a flat export of every service voucher.
type ExportService struct {
	repos repo.Repos
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(repos repo.Repos) *ExportService {
	return &ExportService{repos: repos}
}

// Export returns one VoucherExportRow per service voucher, most recent
// travel start first. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.VoucherExportRow, error) {
	vouchers, err := s.repos.Vouchers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	details, err := loadDetails(ctx, s.repos, vouchers)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.VoucherExportRow, 0, len(details))
	for _, d := range details {
		row := domain.VoucherExportRow{
			VoucherID:         d.ID.String(),
			ReservationNumber: d.ReservationNumber,
			TravelerName:      d.Traveler.Name,
			NumAdults:         d.Traveler.NumAdults,
			NumInfants:        d.Traveler.NumInfants,
			HotelName:         d.HotelName,
			TravelStartDate:   d.TravelStartDate.Format(dateLayout),
			TransferType:      d.TransferType.Label(),
			MealPlan:          d.MealPlan.Label(),
			TotalRooms:        d.TotalRooms(),
			ItineraryDays:     len(d.Itinerary),
		}
		if d.TravelEndDate != nil {
			row.TravelEndDate = d.TravelEndDate.Format(dateLayout)
		}
		for _, day := range d.Itinerary {
			row.ItineraryActivities += len(day.Activities)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
