package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type ReservationRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewReservationRepository(db *gorm.DB, log *zap.Logger) ports.ReservationRepository {
	return &ReservationRepository{
		db:  db,
		log: log,
	}
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

func (r *ReservationRepository) FindByReference(ctx context.Context, reference string) (*domain.Reservation, error) {
	var reservation domain.Reservation
	err := r.db.WithContext(ctx).First(&reservation, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}
