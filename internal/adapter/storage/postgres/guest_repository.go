package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type GuestRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGuestRepository(db *gorm.DB, log *zap.Logger) ports.GuestRepository {
	return &GuestRepository{
		db:  db,
		log: log,
	}
}

func (r *GuestRepository) Save(ctx context.Context, guest *domain.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

func (r *GuestRepository) FindByID(ctx context.Context, id string) (*domain.Guest, error) {
	var guest domain.Guest
	err := r.db.WithContext(ctx).First(&guest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepository) FindByPhone(ctx context.Context, phone string) (*domain.Guest, error) {
	var guest domain.Guest
	err := r.db.WithContext(ctx).First(&guest, "phone = ?", phone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &guest, nil
}
