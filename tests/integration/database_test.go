package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/seu-repo/concierge-ai/internal/adapter/storage/postgres"
	"github.com/seu-repo/concierge-ai/internal/domain"
)

func TestDatabase_GuestCRUD(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	repo := postgres.NewGuestRepository(env.DB, env.Logger)
	ctx := context.Background()

	guest := &domain.Guest{
		ID:    uuid.NewString(),
		Name:  "Rajesh Kumar",
		Phone: "+919876543210",
		Email: "rajesh@example.com",
	}

	t.Run("Create", func(t *testing.T) {
		if err := repo.Save(ctx, guest); err != nil {
			t.Fatalf("Failed to save guest: %v", err)
		}
	})

	t.Run("FindByPhone", func(t *testing.T) {
		found, err := repo.FindByPhone(ctx, "+919876543210")
		if err != nil {
			t.Fatalf("Failed to find guest by phone: %v", err)
		}
		if found == nil {
			t.Fatal("Expected guest, got nil")
		}
		if found.Name != "Rajesh Kumar" {
			t.Errorf("Expected name 'Rajesh Kumar', got '%s'", found.Name)
		}
	})

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, guest.ID)
		if err != nil {
			t.Fatalf("Failed to find guest by id: %v", err)
		}
		if found == nil || found.Email != "rajesh@example.com" {
			t.Errorf("Expected the saved guest, got %+v", found)
		}
	})

	t.Run("Update", func(t *testing.T) {
		guest.Email = "rajesh.kumar@example.com"
		if err := repo.Save(ctx, guest); err != nil {
			t.Fatalf("Failed to update guest: %v", err)
		}

		found, err := repo.FindByID(ctx, guest.ID)
		if err != nil {
			t.Fatalf("Failed to reload guest: %v", err)
		}
		if found.Email != "rajesh.kumar@example.com" {
			t.Errorf("Expected updated email, got '%s'", found.Email)
		}
	})

	t.Run("UnknownPhoneIsNotAnError", func(t *testing.T) {
		found, err := repo.FindByPhone(ctx, "+910000000000")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("Expected nil for an unknown phone, got %+v", found)
		}
	})
}

func TestDatabase_RoomInventory(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	repo := postgres.NewRoomRepository(env.DB, env.Logger)
	ctx := context.Background()

	rooms := []*domain.Room{
		{ID: uuid.NewString(), RoomNumber: "101", RoomType: "deluxe", PricePerNight: 3500, Capacity: 2, Floor: 1, Status: "clean", IsAvailable: true},
		{ID: uuid.NewString(), RoomNumber: "102", RoomType: "deluxe", PricePerNight: 3500, Capacity: 2, Floor: 1, Status: "clean", IsAvailable: true},
		{ID: uuid.NewString(), RoomNumber: "201", RoomType: "suite", PricePerNight: 8000, Capacity: 4, Floor: 2, Status: "clean", IsAvailable: true},
	}
	for _, room := range rooms {
		if err := repo.Save(ctx, room); err != nil {
			t.Fatalf("Failed to save room %s: %v", room.RoomNumber, err)
		}
	}

	t.Run("FindByType", func(t *testing.T) {
		deluxe, err := repo.FindByType(ctx, "deluxe")
		if err != nil {
			t.Fatalf("Failed to find rooms by type: %v", err)
		}
		if len(deluxe) != 2 {
			t.Errorf("Expected 2 deluxe rooms, got %d", len(deluxe))
		}
	})

	t.Run("FindAll", func(t *testing.T) {
		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("Failed to list rooms: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("Expected 3 rooms, got %d", len(all))
		}
	})

	t.Run("FindByID", func(t *testing.T) {
		found, err := repo.FindByID(ctx, rooms[2].ID)
		if err != nil {
			t.Fatalf("Failed to find room: %v", err)
		}
		if found == nil || found.RoomType != "suite" {
			t.Errorf("Expected the suite, got %+v", found)
		}
	})
}

func TestDatabase_BookingLifecycle(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	guests := postgres.NewGuestRepository(env.DB, env.Logger)
	rooms := postgres.NewRoomRepository(env.DB, env.Logger)
	bookings := postgres.NewBookingRepository(env.DB, env.Logger)
	ctx := context.Background()

	guest := &domain.Guest{ID: uuid.NewString(), Name: "Priya Sharma", Phone: "+919812345678"}
	if err := guests.Save(ctx, guest); err != nil {
		t.Fatalf("Failed to save guest: %v", err)
	}

	room := &domain.Room{ID: uuid.NewString(), RoomNumber: "301", RoomType: "deluxe", PricePerNight: 3500, Capacity: 2, Floor: 3, Status: "clean", IsAvailable: true}
	if err := rooms.Save(ctx, room); err != nil {
		t.Fatalf("Failed to save room: %v", err)
	}

	checkIn := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		ID:               uuid.NewString(),
		BookingReference: "BK2604010A1F",
		GuestID:          guest.ID,
		RoomID:           room.ID,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		NumberOfGuests:   2,
		NumberOfNights:   3,
		RoomRate:         3500,
		TotalAmount:      10500,
		TaxAmount:        1260,
		FinalAmount:      11760,
		Status:           domain.BookingStatusConfirmed,
		Source:           "concierge",
	}

	t.Run("Create", func(t *testing.T) {
		if err := bookings.Save(ctx, booking); err != nil {
			t.Fatalf("Failed to save booking: %v", err)
		}
	})

	t.Run("FindByReference", func(t *testing.T) {
		found, err := bookings.FindByReference(ctx, "BK2604010A1F")
		if err != nil {
			t.Fatalf("Failed to find booking: %v", err)
		}
		if found == nil {
			t.Fatal("Expected booking, got nil")
		}
		if found.FinalAmount != 11760 {
			t.Errorf("Expected final amount 11760, got %.2f", found.FinalAmount)
		}
		if found.Guest == nil || found.Guest.Name != "Priya Sharma" {
			t.Errorf("Expected guest relation to be loaded, got %+v", found.Guest)
		}
		if found.Room == nil || found.Room.RoomNumber != "301" {
			t.Errorf("Expected room relation to be loaded, got %+v", found.Room)
		}
	})

	t.Run("FindOverlapping", func(t *testing.T) {
		// Window intersecting the stay
		hits, err := bookings.FindOverlapping(ctx, room.ID,
			time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("Failed to query overlaps: %v", err)
		}
		if len(hits) != 1 {
			t.Errorf("Expected 1 overlapping booking, got %d", len(hits))
		}

		// Back-to-back stay starting on the check-out day is not an overlap
		hits, err = bookings.FindOverlapping(ctx, room.ID,
			checkOut,
			checkOut.AddDate(0, 0, 2))
		if err != nil {
			t.Fatalf("Failed to query overlaps: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("Expected no overlap for a back-to-back stay, got %d", len(hits))
		}
	})

	t.Run("FindByGuestID", func(t *testing.T) {
		found, err := bookings.FindByGuestID(ctx, guest.ID)
		if err != nil {
			t.Fatalf("Failed to list guest bookings: %v", err)
		}
		if len(found) != 1 {
			t.Errorf("Expected 1 booking for guest, got %d", len(found))
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		booking.Status = domain.BookingStatusCancelled
		if err := bookings.Update(ctx, booking); err != nil {
			t.Fatalf("Failed to cancel booking: %v", err)
		}

		found, err := bookings.FindByReference(ctx, "BK2604010A1F")
		if err != nil {
			t.Fatalf("Failed to reload booking: %v", err)
		}
		if found.Status != domain.BookingStatusCancelled {
			t.Errorf("Expected cancelled status, got '%s'", found.Status)
		}

		// Cancelled stays no longer block the room
		hits, err := bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			t.Fatalf("Failed to query overlaps: %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("Cancelled booking must not count as overlap, got %d", len(hits))
		}
	})

	t.Run("FindAllFiltersByStatus", func(t *testing.T) {
		confirmed, err := bookings.FindAll(ctx, domain.BookingStatusConfirmed, 50, 0)
		if err != nil {
			t.Fatalf("Failed to list bookings: %v", err)
		}
		if len(confirmed) != 0 {
			t.Errorf("Expected no confirmed bookings after cancellation, got %d", len(confirmed))
		}

		cancelled, err := bookings.FindAll(ctx, domain.BookingStatusCancelled, 50, 0)
		if err != nil {
			t.Fatalf("Failed to list bookings: %v", err)
		}
		if len(cancelled) != 1 {
			t.Errorf("Expected 1 cancelled booking, got %d", len(cancelled))
		}
	})
}

func TestDatabase_ReservationRoundTrip(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	repo := postgres.NewReservationRepository(env.DB, env.Logger)
	ctx := context.Background()

	reservation := &domain.Reservation{
		ID:        uuid.NewString(),
		Reference: "DN2604020B2C",
		Kind:      domain.ReservationDining,
		GuestName: "Amit Verma",
		Phone:     "+919811112222",
		Date:      time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Detail:    "dinner",
		PartySize: 4,
		Status:    "confirmed",
	}

	if err := repo.Save(ctx, reservation); err != nil {
		t.Fatalf("Failed to save reservation: %v", err)
	}

	found, err := repo.FindByReference(ctx, "DN2604020B2C")
	if err != nil {
		t.Fatalf("Failed to find reservation: %v", err)
	}
	if found == nil {
		t.Fatal("Expected reservation, got nil")
	}
	if found.Kind != domain.ReservationDining || found.PartySize != 4 {
		t.Errorf("Reservation lost in round trip: %+v", found)
	}

	missing, err := repo.FindByReference(ctx, "DN0000000000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for an unknown reference, got %+v", missing)
	}
}
