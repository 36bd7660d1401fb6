package ports

import (
	"context"
	"time"

	"github.com/seu-repo/concierge-ai/internal/domain"
)

// SessionStore persists conversation sessions across turns. Load returns
// (nil, nil) for an unknown id; the engine treats that as a new session.
// The engine serializes access per session id, so implementations only need
// to be safe for concurrent use across different ids.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository persists room bookings
type BookingRepository interface {
	Save(ctx context.Context, booking *domain.Booking) error
	FindByReference(ctx context.Context, reference string) (*domain.Booking, error)
	FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Booking, error)
	FindByGuestID(ctx context.Context, guestID string) ([]domain.Booking, error)
	FindAll(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// RoomRepository manages the room inventory
type RoomRepository interface {
	Save(ctx context.Context, room *domain.Room) error
	FindByID(ctx context.Context, id string) (*domain.Room, error)
	FindByType(ctx context.Context, roomType string) ([]domain.Room, error)
	FindAll(ctx context.Context) ([]domain.Room, error)
}

// GuestRepository persists guest profiles keyed by phone number
type GuestRepository interface {
	Save(ctx context.Context, guest *domain.Guest) error
	FindByID(ctx context.Context, id string) (*domain.Guest, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Guest, error)
}

// ReservationRepository persists dining and event reservations
type ReservationRepository interface {
	Save(ctx context.Context, r *domain.Reservation) error
	FindByReference(ctx context.Context, reference string) (*domain.Reservation, error)
}

// Cache is a shared key-value cache with TTL semantics
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
