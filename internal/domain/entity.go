package domain

// EntityType identifies the kind of value extracted from an utterance
type EntityType string

const (
	EntityPhoneNumber      EntityType = "phone_number"
	EntityEmail            EntityType = "email"
	EntityDate             EntityType = "date"
	EntityRoomType         EntityType = "room_type"
	EntityMealType         EntityType = "meal_type"
	EntityHallType         EntityType = "hall_type"
	EntityGuestCount       EntityType = "guest_count"
	EntityDuration         EntityType = "duration"
	EntityPersonName       EntityType = "person_name"
	EntityBookingReference EntityType = "booking_reference"
)

// EntityMatch is a typed value pulled out of raw text, independent of
// intent. Slot is the session slot this match feeds, resolved from the
// entity type and the conversational context (e.g. a date becomes
// check_in_date or check_out_date depending on what is being collected).
type EntityMatch struct {
	Type       EntityType `json:"type"`
	Raw        string     `json:"raw"`
	Value      string     `json:"value"`
	Slot       string     `json:"slot"`
	Confidence float64    `json:"confidence"`
}
