package room

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// Service answers availability and catalog questions for the HTTP API
// and the concierge's room-inquiry responses.
type Service struct {
	rooms    ports.RoomRepository
	bookings ports.BookingRepository
	catalog  map[string]ports.RoomTypeInfo
	log      *zap.Logger
}

func NewService(rooms ports.RoomRepository, bookings ports.BookingRepository, catalog map[string]ports.RoomTypeInfo, log *zap.Logger) *Service {
	return &Service{
		rooms:    rooms,
		bookings: bookings,
		catalog:  catalog,
		log:      log,
	}
}

// CheckAvailability lists rooms of roomType free for the whole stay.
// An empty roomType checks every category.
func (s *Service) CheckAvailability(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]domain.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("check-out must be after check-in")
	}

	var candidates []domain.Room
	var err error
	if roomType == "" {
		candidates, err = s.rooms.FindAll(ctx)
	} else {
		candidates, err = s.rooms.FindByType(ctx, roomType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	available := make([]domain.Room, 0, len(candidates))
	for _, room := range candidates {
		if !room.IsAvailable {
			continue
		}
		overlapping, err := s.bookings.FindOverlapping(ctx, room.ID, checkIn, checkOut)
		if err != nil {
			return nil, fmt.Errorf("failed to check overlap for room %s: %w", room.ID, err)
		}
		if len(overlapping) == 0 {
			available = append(available, room)
		}
	}

	s.log.Debug("availability checked",
		zap.String("room_type", roomType),
		zap.Time("check_in", checkIn),
		zap.Time("check_out", checkOut),
		zap.Int("available", len(available)))

	return available, nil
}

// RoomTypes returns the bookable categories with pricing
func (s *Service) RoomTypes() map[string]ports.RoomTypeInfo {
	out := make(map[string]ports.RoomTypeInfo, len(s.catalog))
	for k, v := range s.catalog {
		out[k] = v
	}
	return out
}
