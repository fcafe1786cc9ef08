package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
)

func (r *GormRepo) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	if err := r.DB.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &msg, nil
}

func (r *GormRepo) ListMessages(ctx context.Context, offset, limit int) ([]models.Message, error) {
	items := make([]models.Message, 0, limit)
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	return r.DB.WithContext(ctx).Create(msg).Error
}

func (r *GormRepo) DeleteMessage(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return notFound(err, ErrNotFound)
		}
		return tx.Delete(&models.Message{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
