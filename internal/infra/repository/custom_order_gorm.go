package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type CustomOrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomOrderGormRepository(db *gorm.DB) *CustomOrderGormRepository {
	return &CustomOrderGormRepository{db: db}
}

func (r *CustomOrderGormRepository) Create(ctx context.Context, co model.CustomOrder) (model.CustomOrder, error) {
	if err := r.db.WithContext(ctx).Create(&co).Error; err != nil {
		return model.CustomOrder{}, err
	}
	return co, nil
}

func (r *CustomOrderGormRepository) List(ctx context.Context, page int, limit int) ([]model.CustomOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.CustomOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.CustomOrder
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *CustomOrderGormRepository) FindByID(ctx context.Context, id int64) (model.CustomOrder, error) {
	var co model.CustomOrder
	err := r.db.WithContext(ctx).First(&co, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CustomOrder{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CustomOrder{}, err
	}
	return co, nil
}

func (r *CustomOrderGormRepository) Update(ctx context.Context, co model.CustomOrder) error {
	res := r.db.WithContext(ctx).Model(&model.CustomOrder{}).Where("id = ?", co.ID).Updates(map[string]interface{}{
		"status":       co.Status,
		"admin_notes":  co.AdminNotes,
		"quote_amount": co.QuoteAmount,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
