package domain

import (
	"time"
)

// BookingStatus represents the lifecycle of a room booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Guest is a person who has interacted with the booking system
type Guest struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone" gorm:"uniqueIndex"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Room is a physical room in the hotel inventory
type Room struct {
	ID            string  `json:"id" gorm:"primaryKey"`
	RoomNumber    string  `json:"room_number" gorm:"uniqueIndex"`
	RoomType      string  `json:"room_type" gorm:"index"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Floor         int     `json:"floor"`
	// Status is the housekeeping state: clean, dirty, maintenance
	Status      string    `json:"status"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Booking is a confirmed or pending room reservation
type Booking struct {
	ID               string        `json:"id" gorm:"primaryKey"`
	BookingReference string        `json:"booking_reference" gorm:"uniqueIndex"`
	GuestID          string        `json:"guest_id" gorm:"index"`
	RoomID           string        `json:"room_id" gorm:"index"`
	CheckInDate      time.Time     `json:"check_in_date" gorm:"index"`
	CheckOutDate     time.Time     `json:"check_out_date"`
	NumberOfGuests   int           `json:"number_of_guests"`
	NumberOfNights   int           `json:"number_of_nights"`
	RoomRate         float64       `json:"room_rate"`
	TotalAmount      float64       `json:"total_amount"`
	TaxAmount        float64       `json:"tax_amount"`
	FinalAmount      float64       `json:"final_amount"`
	Status           BookingStatus `json:"status" gorm:"index"`
	PaymentStatus    string        `json:"payment_status"`
	SpecialRequests  string        `json:"special_requests,omitempty"`
	Source           string        `json:"source"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	// Relations (for JSON responses)
	Guest *Guest `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
	Room  *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}

// ReservationKind distinguishes non-room reservations
type ReservationKind string

const (
	ReservationDining ReservationKind = "dining"
	ReservationEvent  ReservationKind = "event"
)

// Reservation covers dining-table and event-hall bookings, which share a
// single lightweight record
type Reservation struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	Reference string          `json:"reference" gorm:"uniqueIndex"`
	Kind      ReservationKind `json:"kind" gorm:"index"`
	GuestName string          `json:"guest_name"`
	Phone     string          `json:"phone" gorm:"index"`
	Date      time.Time       `json:"date"`
	// Detail is the meal type for dining, the hall size for events
	Detail        string    `json:"detail"`
	PartySize     int       `json:"party_size"`
	DurationHours int       `json:"duration_hours,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ExecutionResult is what the execution collaborator reports back to the
// dialogue engine after a confirmed intent is carried out.
type ExecutionResult struct {
	Success       bool   `json:"success"`
	Reference     string `json:"reference,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
	// Recoverable failures send the session back to slot collection
	// (e.g. no availability for the requested dates) instead of FAILED.
	Recoverable bool     `json:"recoverable"`
	ClearSlots  []string `json:"clear_slots,omitempty"`
}
