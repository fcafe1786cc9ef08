package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/snake_catalogue/internal/models"
)

func (r *GormRepo) GetSnake(ctx context.Context, id uint) (*models.Snake, error) {
	var snake models.Snake
	if err := r.DB.WithContext(ctx).First(&snake, id).Error; err != nil {
		return nil, notFound(err, ErrNotFound)
	}
	return &snake, nil
}

func (r *GormRepo) ListSnakes(ctx context.Context, offset, limit int) ([]models.Snake, error) {
	items := make([]models.Snake, 0, limit)
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateSnake(ctx context.Context, snake *models.Snake) error {
	return r.DB.WithContext(ctx).Create(snake).Error
}

func (r *GormRepo) SaveSnake(ctx context.Context, snake *models.Snake) error {
	return r.DB.WithContext(ctx).Save(snake).Error
}

// DeleteSnake removes the row and returns it as it was before deletion.
func (r *GormRepo) DeleteSnake(ctx context.Context, id uint) (*models.Snake, error) {
	var snake models.Snake
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&snake, id).Error; err != nil {
			return notFound(err, ErrNotFound)
		}
		return tx.Delete(&models.Snake{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &snake, nil
}
