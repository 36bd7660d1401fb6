package mocks

import (
	"context"
	"time"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

// MockSessionStore is a mock implementation of SessionStore interface
type MockSessionStore struct {
	Sessions   map[string]*domain.Session
	LoadFunc   func(ctx context.Context, id string) (*domain.Session, error)
	SaveFunc   func(ctx context.Context, session *domain.Session) error
	DeleteFunc func(ctx context.Context, id string) error
}

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		Sessions: make(map[string]*domain.Session),
	}
}

func (m *MockSessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, id)
	}
	return m.Sessions[id], nil
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.Sessions[session.ID] = session
	return nil
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	delete(m.Sessions, id)
	return nil
}

// MockBookingRepository is a mock implementation of BookingRepository interface
type MockBookingRepository struct {
	Bookings            map[string]*domain.Booking
	SaveFunc            func(ctx context.Context, booking *domain.Booking) error
	FindByReferenceFunc func(ctx context.Context, reference string) (*domain.Booking, error)
	FindOverlappingFunc func(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Booking, error)
	FindByGuestIDFunc   func(ctx context.Context, guestID string) ([]domain.Booking, error)
	FindAllFunc         func(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	UpdateFunc          func(ctx context.Context, booking *domain.Booking) error
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		Bookings: make(map[string]*domain.Booking),
	}
}

func (m *MockBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, booking)
	}
	m.Bookings[booking.BookingReference] = booking
	return nil
}

func (m *MockBookingRepository) FindByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	if m.FindByReferenceFunc != nil {
		return m.FindByReferenceFunc(ctx, reference)
	}
	return m.Bookings[reference], nil
}

func (m *MockBookingRepository) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	if m.FindOverlappingFunc != nil {
		return m.FindOverlappingFunc(ctx, roomID, checkIn, checkOut)
	}
	var out []domain.Booking
	for _, b := range m.Bookings {
		if b.RoomID == roomID && b.Status != domain.BookingStatusCancelled &&
			b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *MockBookingRepository) FindByGuestID(ctx context.Context, guestID string) ([]domain.Booking, error) {
	if m.FindByGuestIDFunc != nil {
		return m.FindByGuestIDFunc(ctx, guestID)
	}
	var out []domain.Booking
	for _, b := range m.Bookings {
		if b.GuestID == guestID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *MockBookingRepository) FindAll(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx, status, limit, offset)
	}
	var out []domain.Booking
	for _, b := range m.Bookings {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, booking)
	}
	m.Bookings[booking.BookingReference] = booking
	return nil
}

// MockRoomRepository is a mock implementation of RoomRepository interface
type MockRoomRepository struct {
	Rooms          map[string]*domain.Room
	SaveFunc       func(ctx context.Context, room *domain.Room) error
	FindByIDFunc   func(ctx context.Context, id string) (*domain.Room, error)
	FindByTypeFunc func(ctx context.Context, roomType string) ([]domain.Room, error)
	FindAllFunc    func(ctx context.Context) ([]domain.Room, error)
}

func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{
		Rooms: make(map[string]*domain.Room),
	}
}

func (m *MockRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, room)
	}
	m.Rooms[room.ID] = room
	return nil
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return m.Rooms[id], nil
}

func (m *MockRoomRepository) FindByType(ctx context.Context, roomType string) ([]domain.Room, error) {
	if m.FindByTypeFunc != nil {
		return m.FindByTypeFunc(ctx, roomType)
	}
	var out []domain.Room
	for _, r := range m.Rooms {
		if r.RoomType == roomType {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MockRoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	var out []domain.Room
	for _, r := range m.Rooms {
		out = append(out, *r)
	}
	return out, nil
}

// MockGuestRepository is a mock implementation of GuestRepository interface
type MockGuestRepository struct {
	Guests          map[string]*domain.Guest
	SaveFunc        func(ctx context.Context, guest *domain.Guest) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Guest, error)
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.Guest, error)
}

func NewMockGuestRepository() *MockGuestRepository {
	return &MockGuestRepository{
		Guests: make(map[string]*domain.Guest),
	}
}

func (m *MockGuestRepository) Save(ctx context.Context, guest *domain.Guest) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, guest)
	}
	m.Guests[guest.ID] = guest
	return nil
}

func (m *MockGuestRepository) FindByID(ctx context.Context, id string) (*domain.Guest, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return m.Guests[id], nil
}

func (m *MockGuestRepository) FindByPhone(ctx context.Context, phone string) (*domain.Guest, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	for _, g := range m.Guests {
		if g.Phone == phone {
			return g, nil
		}
	}
	return nil, nil
}

// MockReservationRepository is a mock implementation of ReservationRepository interface
type MockReservationRepository struct {
	Reservations        map[string]*domain.Reservation
	SaveFunc            func(ctx context.Context, r *domain.Reservation) error
	FindByReferenceFunc func(ctx context.Context, reference string) (*domain.Reservation, error)
}

func NewMockReservationRepository() *MockReservationRepository {
	return &MockReservationRepository{
		Reservations: make(map[string]*domain.Reservation),
	}
}

func (m *MockReservationRepository) Save(ctx context.Context, r *domain.Reservation) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	m.Reservations[r.Reference] = r
	return nil
}

func (m *MockReservationRepository) FindByReference(ctx context.Context, reference string) (*domain.Reservation, error) {
	if m.FindByReferenceFunc != nil {
		return m.FindByReferenceFunc(ctx, reference)
	}
	return m.Reservations[reference], nil
}
