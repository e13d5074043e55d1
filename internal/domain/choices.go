package domain

// TransferType is how a traveler is moved between airport and hotel.
type TransferType string

const (
	TransferPrivate TransferType = "PRIVATE"
	TransferShared  TransferType = "SHARED"
	TransferGroup   TransferType = "GROUP"
)

var transferTypeLabels = map[TransferType]string{
	TransferPrivate: "Private Transfer",
	TransferShared:  "Shared Transfer",
	TransferGroup:   "Group Transfer",
}

// TransferTypes lists every transfer type in display order.
func TransferTypes() []TransferType {
	return []TransferType{TransferPrivate, TransferShared, TransferGroup}
}

// Valid reports whether t is a known transfer type.
func (t TransferType) Valid() bool { _, ok := transferTypeLabels[t]; return ok }

// Label returns the human-readable name, or the raw code if unknown.
func (t TransferType) Label() string { return labelOr(transferTypeLabels, t) }

// MealPlan is the board basis booked with the hotel.
type MealPlan string

const (
	MealBedAndBreakfast MealPlan = "BB"
	MealHalfBoard       MealPlan = "HB"
	MealFullBoard       MealPlan = "FB"
	MealAllInclusive    MealPlan = "AI"
)

var mealPlanLabels = map[MealPlan]string{
	MealBedAndBreakfast: "Bed and Breakfast",
	MealHalfBoard:       "Half Board",
	MealFullBoard:       "Full Board",
	MealAllInclusive:    "All Inclusive",
}

// MealPlans lists every meal plan in display order.
func MealPlans() []MealPlan {
	return []MealPlan{MealBedAndBreakfast, MealHalfBoard, MealFullBoard, MealAllInclusive}
}

func (m MealPlan) Valid() bool   { _, ok := mealPlanLabels[m]; return ok }
func (m MealPlan) Label() string { return labelOr(mealPlanLabels, m) }

// RoomType is the occupancy class of a hotel room.
type RoomType string

const (
	RoomSingle RoomType = "SGL"
	RoomDouble RoomType = "DBL"
	RoomTwin   RoomType = "TWN"
	RoomTriple RoomType = "TPL"
)

var roomTypeLabels = map[RoomType]string{
	RoomSingle: "Single",
	RoomDouble: "Double",
	RoomTwin:   "Twin",
	RoomTriple: "Triple",
}

// RoomTypes lists every room type in display order.
func RoomTypes() []RoomType {
	return []RoomType{RoomSingle, RoomDouble, RoomTwin, RoomTriple}
}

func (r RoomType) Valid() bool   { _, ok := roomTypeLabels[r]; return ok }
func (r RoomType) Label() string { return labelOr(roomTypeLabels, r) }

// ActivityType classifies an entry on an itinerary day.
type ActivityType string

const (
	ActivityTransfer ActivityType = "TRANSFER"
	ActivityTour     ActivityType = "TOUR"
	ActivityCheckIn  ActivityType = "CHECKIN"
	ActivityCheckOut ActivityType = "CHECKOUT"
	ActivityMeal     ActivityType = "MEAL"
	ActivityFree     ActivityType = "FREE"
	ActivityOther    ActivityType = "OTHER"
)

var activityTypeLabels = map[ActivityType]string{
	ActivityTransfer: "Transfer",
	ActivityTour:     "Tour/Activity",
	ActivityCheckIn:  "Hotel Check-in",
	ActivityCheckOut: "Hotel Check-out",
	ActivityMeal:     "Meal",
	ActivityFree:     "Free Time",
	ActivityOther:    "Other",
}

// ActivityTypes lists every activity type in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityTransfer, ActivityTour, ActivityCheckIn, ActivityCheckOut,
		ActivityMeal, ActivityFree, ActivityOther,
	}
}

func (a ActivityType) Valid() bool   { _, ok := activityTypeLabels[a]; return ok }
func (a ActivityType) Label() string { return labelOr(activityTypeLabels, a) }

func labelOr[K ~string](labels map[K]string, k K) string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}
