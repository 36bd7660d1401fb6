package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
	"github.com/seu-repo/concierge-ai/internal/service/email"
)

type Config struct {
	TaxRate            float64
	RoomTypes          map[string]ports.RoomTypeInfo
	ConfirmationEmails bool
}

// Service is the execution collaborator behind confirmed dialogue intents
// and the business surface behind the staff booking API.
type Service struct {
	bookings     ports.BookingRepository
	rooms        ports.RoomRepository
	guests       ports.GuestRepository
	reservations ports.ReservationRepository
	email        *email.Service
	cfg          Config
	log          *zap.Logger
	now          func() time.Time
}

func NewService(
	bookings ports.BookingRepository,
	rooms ports.RoomRepository,
	guests ports.GuestRepository,
	reservations ports.ReservationRepository,
	emailSvc *email.Service,
	cfg Config,
	log *zap.Logger,
) *Service {
	if cfg.TaxRate == 0 {
		cfg.TaxRate = 0.12
	}
	return &Service{
		bookings:     bookings,
		rooms:        rooms,
		guests:       guests,
		reservations: reservations,
		email:        emailSvc,
		cfg:          cfg,
		log:          log,
		now:          time.Now,
	}
}

// Execute dispatches a confirmed intent. Domain-level refusals (no
// availability, unknown reference) come back as recoverable results, not
// errors; errors are reserved for infrastructure failures.
func (s *Service) Execute(ctx context.Context, intentLabel string, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	switch intentLabel {
	case domain.IntentRoomBooking:
		return s.createRoomBooking(ctx, slots)
	case domain.IntentDiningReservation:
		return s.createReservation(ctx, domain.ReservationDining, slots)
	case domain.IntentEventBooking:
		return s.createReservation(ctx, domain.ReservationEvent, slots)
	case domain.IntentBookingCancellation:
		return s.cancelByReference(ctx, slots)
	case domain.IntentBookingModification:
		return s.modifyBooking(ctx, slots)
	default:
		return nil, fmt.Errorf("intent %q is not executable", intentLabel)
	}
}

func (s *Service) createRoomBooking(ctx context.Context, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	name := slotValue(slots, "guest_name")
	phone := slotValue(slots, "phone_number")
	roomType := slotValue(slots, "room_type")
	guestCount, _ := strconv.Atoi(slotValue(slots, "guest_count"))

	checkIn, err := time.Parse("2006-01-02", slotValue(slots, "check_in_date"))
	if err != nil {
		return nil, fmt.Errorf("malformed check_in_date slot: %w", err)
	}
	checkOut, err := time.Parse("2006-01-02", slotValue(slots, "check_out_date"))
	if err != nil {
		return nil, fmt.Errorf("malformed check_out_date slot: %w", err)
	}

	if !checkOut.After(checkIn) {
		return &domain.ExecutionResult{
			FailureReason: "check-out must be after check-in",
			Recoverable:   true,
			ClearSlots:    []string{"check_out_date"},
		}, nil
	}

	if info, ok := s.cfg.RoomTypes[roomType]; ok && guestCount > info.Capacity {
		return &domain.ExecutionResult{
			FailureReason: fmt.Sprintf("a %s sleeps at most %d guests", info.Name, info.Capacity),
			Recoverable:   true,
			ClearSlots:    []string{"room_type"},
		}, nil
	}

	room, err := s.findAvailableRoom(ctx, roomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return &domain.ExecutionResult{
			FailureReason: fmt.Sprintf("no %s rooms are available for those dates", roomType),
			Recoverable:   true,
			ClearSlots:    []string{"check_in_date", "check_out_date"},
		}, nil
	}

	guest, err := s.upsertGuest(ctx, name, phone, slotValue(slots, "email"))
	if err != nil {
		return nil, err
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	total := room.PricePerNight * float64(nights)
	tax := total * s.cfg.TaxRate

	now := s.now()
	booking := &domain.Booking{
		ID:               uuid.NewString(),
		BookingReference: s.newReference("BK"),
		GuestID:          guest.ID,
		RoomID:           room.ID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		NumberOfGuests:   guestCount,
		NumberOfNights:   nights,
		RoomRate:         room.PricePerNight,
		TotalAmount:      total,
		TaxAmount:        tax,
		FinalAmount:      total + tax,
		Status:           domain.BookingStatusConfirmed,
		PaymentStatus:    "pay_at_hotel",
		Source:           "concierge",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.log.Info("room booking created",
		zap.String("reference", booking.BookingReference),
		zap.String("room_type", roomType),
		zap.Int("nights", nights),
		zap.Float64("final_amount", booking.FinalAmount))

	s.notifyConfirmation(guest, booking, roomType)

	return &domain.ExecutionResult{Success: true, Reference: booking.BookingReference}, nil
}

func (s *Service) createReservation(ctx context.Context, kind domain.ReservationKind, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	var dateSlot, detailSlot, nameSlot, prefix string
	switch kind {
	case domain.ReservationDining:
		dateSlot, detailSlot, nameSlot, prefix = "reservation_date", "meal_type", "guest_name", "DN"
	case domain.ReservationEvent:
		dateSlot, detailSlot, nameSlot, prefix = "event_date", "hall_type", "organizer_name", "EV"
	}

	date, err := time.Parse("2006-01-02", slotValue(slots, dateSlot))
	if err != nil {
		return nil, fmt.Errorf("malformed %s slot: %w", dateSlot, err)
	}
	partySize, _ := strconv.Atoi(slotValue(slots, "guest_count"))
	duration, _ := strconv.Atoi(slotValue(slots, "duration"))

	now := s.now()
	r := &domain.Reservation{
		ID:            uuid.NewString(),
		Reference:     s.newReference(prefix),
		Kind:          kind,
		GuestName:     slotValue(slots, nameSlot),
		Phone:         slotValue(slots, "phone_number"),
		Date:          date,
		Detail:        slotValue(slots, detailSlot),
		PartySize:     partySize,
		DurationHours: duration,
		Status:        "confirmed",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.reservations.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.log.Info("reservation created",
		zap.String("reference", r.Reference),
		zap.String("kind", string(kind)),
		zap.String("detail", r.Detail),
		zap.Int("party_size", r.PartySize))

	if s.cfg.ConfirmationEmails && s.email != nil {
		if to := slotValue(slots, "email"); to != "" {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := s.email.SendReservationConfirmation(ctx, to, r); err != nil {
					s.log.Warn("reservation confirmation email failed", zap.Error(err))
				}
			}()
		}
	}

	return &domain.ExecutionResult{Success: true, Reference: r.Reference}, nil
}

func (s *Service) cancelByReference(ctx context.Context, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	ref := slotValue(slots, "booking_reference")
	booking, err := s.bookings.FindByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return &domain.ExecutionResult{
			FailureReason: "no booking found with that reference",
			Recoverable:   true,
			ClearSlots:    []string{"booking_reference"},
		}, nil
	}
	if booking.Status == domain.BookingStatusCancelled {
		// idempotent: cancelling twice is still a success
		return &domain.ExecutionResult{Success: true, Reference: ref}, nil
	}

	booking.Status = domain.BookingStatusCancelled
	booking.UpdatedAt = s.now()
	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to cancel booking %s: %w", ref, err)
	}

	s.log.Info("booking cancelled", zap.String("reference", ref))

	if s.cfg.ConfirmationEmails && s.email != nil {
		if guest, gerr := s.guests.FindByID(ctx, booking.GuestID); gerr == nil && guest != nil {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := s.email.SendBookingCancellation(ctx, guest, booking); err != nil {
					s.log.Warn("cancellation email failed", zap.Error(err))
				}
			}()
		}
	}

	return &domain.ExecutionResult{Success: true, Reference: ref}, nil
}

func (s *Service) modifyBooking(ctx context.Context, slots map[string]domain.SlotValue) (*domain.ExecutionResult, error) {
	ref := slotValue(slots, "booking_reference")
	booking, err := s.bookings.FindByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return &domain.ExecutionResult{
			FailureReason: "no booking found with that reference",
			Recoverable:   true,
			ClearSlots:    []string{"booking_reference"},
		}, nil
	}
	if booking.Status == domain.BookingStatusCancelled {
		return &domain.ExecutionResult{
			FailureReason: "that booking was already cancelled",
			Recoverable:   false,
		}, nil
	}

	checkIn := booking.CheckInDate
	checkOut := booking.CheckOutDate
	if v := slotValue(slots, "check_in_date"); v != "" {
		if checkIn, err = time.Parse("2006-01-02", v); err != nil {
			return nil, fmt.Errorf("malformed check_in_date slot: %w", err)
		}
	}
	if v := slotValue(slots, "check_out_date"); v != "" {
		if checkOut, err = time.Parse("2006-01-02", v); err != nil {
			return nil, fmt.Errorf("malformed check_out_date slot: %w", err)
		}
	}
	if !checkOut.After(checkIn) {
		return &domain.ExecutionResult{
			FailureReason: "check-out must be after check-in",
			Recoverable:   true,
			ClearSlots:    []string{"check_out_date"},
		}, nil
	}

	booking.CheckInDate = checkIn
	booking.CheckOutDate = checkOut
	booking.NumberOfNights = int(checkOut.Sub(checkIn).Hours() / 24)
	booking.TotalAmount = booking.RoomRate * float64(booking.NumberOfNights)
	booking.TaxAmount = booking.TotalAmount * s.cfg.TaxRate
	booking.FinalAmount = booking.TotalAmount + booking.TaxAmount
	booking.UpdatedAt = s.now()

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", ref, err)
	}

	s.log.Info("booking modified",
		zap.String("reference", ref),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut))

	return &domain.ExecutionResult{Success: true, Reference: ref}, nil
}

// GetBooking returns a booking by reference, nil when unknown
func (s *Service) GetBooking(ctx context.Context, reference string) (*domain.Booking, error) {
	return s.bookings.FindByReference(ctx, reference)
}

// ListBookings pages through bookings, optionally filtered by status
func (s *Service) ListBookings(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.bookings.FindAll(ctx, status, limit, offset)
}

// CancelBooking is the staff-side cancellation path
func (s *Service) CancelBooking(ctx context.Context, reference string) error {
	res, err := s.cancelByReference(ctx, map[string]domain.SlotValue{
		"booking_reference": {Name: "booking_reference", Value: reference, Status: domain.SlotValid},
	})
	if err != nil {
		return err
	}
	if !res.Success {
		return &domain.ExecutionError{Reason: res.FailureReason, Recoverable: res.Recoverable}
	}
	return nil
}

func (s *Service) findAvailableRoom(ctx context.Context, roomType string, checkIn, checkOut time.Time) (*domain.Room, error) {
	rooms, err := s.rooms.FindByType(ctx, roomType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s rooms: %w", roomType, err)
	}
	for i := range rooms {
		if !rooms[i].IsAvailable {
			continue
		}
		overlapping, err := s.bookings.FindOverlapping(ctx, rooms[i].ID, checkIn, checkOut)
		if err != nil {
			return nil, fmt.Errorf("failed to check overlap for room %s: %w", rooms[i].ID, err)
		}
		if len(overlapping) == 0 {
			return &rooms[i], nil
		}
	}
	return nil, nil
}

func (s *Service) upsertGuest(ctx context.Context, name, phone, emailAddr string) (*domain.Guest, error) {
	guest, err := s.guests.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to look up guest by phone: %w", err)
	}
	now := s.now()
	if guest == nil {
		guest = &domain.Guest{
			ID:        uuid.NewString(),
			Name:      name,
			Phone:     phone,
			Email:     emailAddr,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.guests.Save(ctx, guest); err != nil {
			return nil, fmt.Errorf("failed to save guest: %w", err)
		}
		return guest, nil
	}
	if (name != "" && guest.Name != name) || (emailAddr != "" && guest.Email != emailAddr) {
		guest.Name = name
		if emailAddr != "" {
			guest.Email = emailAddr
		}
		guest.UpdatedAt = now
		if err := s.guests.Save(ctx, guest); err != nil {
			return nil, fmt.Errorf("failed to update guest: %w", err)
		}
	}
	return guest, nil
}

func (s *Service) notifyConfirmation(guest *domain.Guest, booking *domain.Booking, roomType string) {
	if !s.cfg.ConfirmationEmails || s.email == nil || guest.Email == "" {
		return
	}
	roomName := roomType
	if info, ok := s.cfg.RoomTypes[roomType]; ok {
		roomName = info.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.email.SendBookingConfirmation(ctx, guest, booking, roomName); err != nil {
			s.log.Warn("booking confirmation email failed",
				zap.String("reference", booking.BookingReference),
				zap.Error(err))
		}
	}()
}

// newReference builds a human-readable reference: prefix, date, and a
// short random suffix, e.g. BK2608314F2A.
func (s *Service) newReference(prefix string) string {
	buf := make([]byte, 2)
	_, _ = rand.Read(buf)
	return prefix + s.now().Format("060102") + strings.ToUpper(hex.EncodeToString(buf))
}

func slotValue(slots map[string]domain.SlotValue, name string) string {
	if sv, ok := slots[name]; ok {
		return sv.Value
	}
	return ""
}
