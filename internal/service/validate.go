// Package service contains the business logic for the travel operations API.
// Services turn request payloads into validated domain records, enforce
// business rules, and orchestrate repo calls. No SQL lives here. Services
// depend on repo interfaces, not implementations.
package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
)

const (
	dateLayout = "2006-01-02"

	msgRequired    = "This field is required."
	msgInvalidDate = "Date has wrong format. Use YYYY-MM-DD."
	msgInvalidTime = "Time has wrong format. Use hh:mm or hh:mm:ss."
	msgInvalidUUID = "Must be a valid UUID."
)

// validate checks the `validate:"..."` tags on domain records. Errors are
// reported under the json field name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// choice accepts any enum type exposing Valid().
	if err := v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		c, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && c.Valid()
	}); err != nil {
		panic(fmt.Sprintf("service: register choice validator: %v", err))
	}
	return v
}

// checkStruct validates the tags on record and returns every violation,
// one message per failing field.
func checkStruct(record any) domain.FieldErrors {
	fe := domain.FieldErrors{}
	err := validate.Struct(record)
	if err == nil {
		return fe
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add(domain.NonFieldErrors, err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.Add(e.Field(), fieldMessage(e))
	}
	return fe
}

func fieldMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return msgRequired
	case "max":
		if isString {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param())
	case "min":
		if isString {
			return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param())
	case "email":
		return "Enter a valid email address."
	case "choice":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	default:
		return fmt.Sprintf("Failed the %q check.", e.Tag())
	}
}

// withPrefix nests the fields of a validation error under prefix.
// Other errors pass through unchanged.
func withPrefix(prefix string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Prefixed(prefix)
	}
	return err
}

// --- payload application ----------------------------------------------------
//
// The apply helpers copy the keys present in a payload onto a record.
// Absent keys leave the record untouched, which gives partial-update
// semantics when the record was loaded from the database and full-record
// semantics when it starts from the column defaults.

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// setOptString stores nil for blank input.
func setOptString(dst **string, src *string) {
	if src == nil {
		return
	}
	s := strings.TrimSpace(*src)
	if s == "" {
		*dst = nil
		return
	}
	*dst = &s
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDate(fe domain.FieldErrors, field string, dst *time.Time, src *string) {
	if src == nil {
		return
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*src))
	if err != nil {
		fe.Add(field, msgInvalidDate)
		return
	}
	*dst = t
}

// setOptDate stores nil for blank input.
func setOptDate(fe domain.FieldErrors, field string, dst **time.Time, src *string) {
	if src == nil {
		return
	}
	s := strings.TrimSpace(*src)
	if s == "" {
		*dst = nil
		return
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		fe.Add(field, msgInvalidDate)
		return
	}
	*dst = &t
}

func setUUID(fe domain.FieldErrors, field string, dst *uuid.UUID, src *string) {
	if src == nil {
		return
	}
	id, err := uuid.Parse(strings.TrimSpace(*src))
	if err != nil {
		fe.Add(field, msgInvalidUUID)
		return
	}
	*dst = id
}

// requireDate flags a date that is still unset once the payload is applied.
func requireDate(fe domain.FieldErrors, field string, t time.Time) {
	if t.IsZero() && len(fe[field]) == 0 {
		fe.Add(field, msgRequired)
	}
}

// requireKey flags a key that is mandatory in the current mode but absent.
func requireKey(fe domain.FieldErrors, field string, present, required bool) {
	if required && !present {
		fe.Add(field, msgRequired)
	}
}

func applyTraveler(t *domain.Traveler, p domain.TravelerPayload) error {
	setString(&t.Name, p.Name)
	setInt(&t.NumAdults, p.NumAdults)
	setInt(&t.NumInfants, p.NumInfants)
	setOptString(&t.ContactEmail, p.ContactEmail)
	setOptString(&t.ContactPhone, p.ContactPhone)
	return checkStruct(t).Err()
}

// applyVoucher copies the voucher's own scalar keys; nested keys are
// handled by VoucherService.
func applyVoucher(v *domain.ServiceVoucher, p domain.ServiceVoucherPayload) error {
	fe := domain.FieldErrors{}
	setString(&v.ReservationNumber, p.ReservationNumber)
	setString(&v.HotelConfirmationNumber, p.HotelConfirmationNumber)
	setDate(fe, "travel_start_date", &v.TravelStartDate, p.TravelStartDate)
	setOptDate(fe, "travel_end_date", &v.TravelEndDate, p.TravelEndDate)
	setString(&v.HotelName, p.HotelName)
	if p.TransferType != nil {
		v.TransferType = domain.TransferType(strings.TrimSpace(*p.TransferType))
	}
	if p.MealPlan != nil {
		v.MealPlan = domain.MealPlan(strings.TrimSpace(*p.MealPlan))
	}
	setString(&v.Inclusions, p.Inclusions)
	setString(&v.ArrivalDetails, p.ArrivalDetails)
	setString(&v.DepartureDetails, p.DepartureDetails)
	setString(&v.MeetingPoint, p.MeetingPoint)

	requireDate(fe, "travel_start_date", v.TravelStartDate)
	fe.Merge("", checkStruct(v))
	return fe.Err()
}

func applyRoom(ra *domain.RoomAllocation, p domain.RoomAllocationPayload) error {
	if p.RoomType != nil {
		ra.RoomType = domain.RoomType(strings.TrimSpace(*p.RoomType))
	}
	setInt(&ra.Quantity, p.Quantity)
	return checkStruct(ra).Err()
}

// applyItinerary copies an itinerary payload. required demands day and date
// (create and full replace); withParent reads the service_voucher key.
func applyItinerary(it *domain.Itinerary, p domain.ItineraryPayload, required, withParent bool) error {
	fe := domain.FieldErrors{}
	if withParent {
		requireKey(fe, "service_voucher", p.ServiceVoucher != nil, required)
		setUUID(fe, "service_voucher", &it.ServiceVoucherID, p.ServiceVoucher)
	}
	requireKey(fe, "day", p.Day != nil, required)
	setInt(&it.Day, p.Day)
	setDate(fe, "date", &it.Date, p.Date)
	requireDate(fe, "date", it.Date)
	fe.Merge("", checkStruct(it))
	return fe.Err()
}

// applyActivity copies an activity payload. required demands time (create
// and full replace); withParent reads the itinerary key.
func applyActivity(a *domain.ItineraryActivity, p domain.ActivityPayload, required, withParent bool) error {
	fe := domain.FieldErrors{}
	if withParent {
		requireKey(fe, "itinerary", p.Itinerary != nil, required)
		setUUID(fe, "itinerary", &a.ItineraryID, p.Itinerary)
	}
	requireKey(fe, "time", p.Time != nil, required)
	if p.Time != nil {
		tod, err := domain.ParseTimeOfDay(strings.TrimSpace(*p.Time))
		if err != nil {
			fe.Add("time", msgInvalidTime)
		} else {
			a.Time = tod
		}
	}
	if p.ActivityType != nil {
		a.ActivityType = domain.ActivityType(strings.TrimSpace(*p.ActivityType))
	}
	setString(&a.Description, p.Description)
	setString(&a.Location, p.Location)
	setString(&a.Notes, p.Notes)

	fe.Merge("", checkStruct(a))
	return fe.Err()
}

func applyHotelVoucher(h *domain.HotelVoucher, p domain.HotelVoucherPayload) error {
	fe := domain.FieldErrors{}
	setString(&h.HotelName, p.HotelName)
	setString(&h.HotelAddress, p.HotelAddress)
	setString(&h.GuestName, p.GuestName)
	setDate(fe, "check_in_date", &h.CheckInDate, p.CheckInDate)
	setDate(fe, "check_out_date", &h.CheckOutDate, p.CheckOutDate)
	if p.RoomType != nil {
		h.RoomType = domain.RoomType(strings.TrimSpace(*p.RoomType))
	}
	setInt(&h.NumberOfRooms, p.NumberOfRooms)
	setString(&h.ConfirmationNumber, p.ConfirmationNumber)
	setString(&h.SpecialRequests, p.SpecialRequests)

	requireDate(fe, "check_in_date", h.CheckInDate)
	requireDate(fe, "check_out_date", h.CheckOutDate)
	if !h.CheckInDate.IsZero() && !h.CheckOutDate.IsZero() && h.CheckOutDate.Before(h.CheckInDate) {
		fe.Add("check_out_date", "Check-out date must not be before check-in date.")
	}
	fe.Merge("", checkStruct(h))
	return fe.Err()
}
