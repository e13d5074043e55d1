package domain

// VoucherExportRow is a single row in the voucher export.
// It is a flat, denormalized view: one row per service voucher with the
// traveler and the derived totals inlined.
type VoucherExportRow struct {
	VoucherID           string
	ReservationNumber   string
	TravelerName        string
	NumAdults           int
	NumInfants          int
	HotelName           string
	TravelStartDate     string // "2006-01-02" formatted date
	TravelEndDate       string // empty string when nil
	TransferType        string // display label
	MealPlan            string // display label
	TotalRooms          int
	ItineraryDays       int
	ItineraryActivities int
}
