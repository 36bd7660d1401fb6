package postgres

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/observability/telemetry"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type BookingRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewBookingRepository(db *gorm.DB, log *zap.Logger) ports.BookingRepository {
	return &BookingRepository{
		db:  db,
		log: log,
	}
}

func (r *BookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	return r.observe(func() error {
		return r.db.WithContext(ctx).Save(booking).Error
	})
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		First(&booking, "booking_reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindOverlapping returns non-cancelled bookings for roomID whose stay
// intersects [checkIn, checkOut).
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status <> ? AND check_in_date < ? AND check_out_date > ?",
			roomID, domain.BookingStatusCancelled, checkOut, checkIn).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) FindByGuestID(ctx context.Context, guestID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) FindAll(ctx context.Context, status domain.BookingStatus, limit, offset int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	q := r.db.WithContext(ctx).Preload("Guest").Preload("Room").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Limit(limit).Offset(offset).Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.observe(func() error {
		return r.db.WithContext(ctx).Save(booking).Error
	})
}

func (r *BookingRepository) observe(fn func() error) error {
	start := time.Now()
	err := fn()
	telemetry.DatabaseLatency.Observe(time.Since(start).Seconds())
	return err
}
