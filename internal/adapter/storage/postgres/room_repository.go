package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type RoomRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRoomRepository(db *gorm.DB, log *zap.Logger) ports.RoomRepository {
	return &RoomRepository{
		db:  db,
		log: log,
	}
}

func (r *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *RoomRepository) FindByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) FindByType(ctx context.Context, roomType string) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("room_type = ?", roomType).
		Order("room_number asc").
		Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Order("room_number asc").Find(&rooms).Error
	return rooms, err
}
