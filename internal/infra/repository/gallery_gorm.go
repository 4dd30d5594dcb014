package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type GalleryGormRepository struct {
	db *gorm.DB
}

// DI
func NewGalleryGormRepository(db *gorm.DB) *GalleryGormRepository {
	return &GalleryGormRepository{db: db}
}

func (r *GalleryGormRepository) ListActive(ctx context.Context, category *model.GalleryCategory) ([]model.GalleryImage, error) {
	tx := r.db.WithContext(ctx).Where("is_active = ?", true)

	if category != nil {
		tx = tx.Where("category = ?", *category)
	}

	var images []model.GalleryImage
	if err := tx.Order("created_at desc").Find(&images).Error; err != nil {
		return []model.GalleryImage{}, err
	}
	return images, nil
}

func (r *GalleryGormRepository) FindByID(ctx context.Context, id int64) (model.GalleryImage, error) {
	var img model.GalleryImage
	err := r.db.WithContext(ctx).First(&img, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.GalleryImage{}, repo.ErrNotFound
	}
	if err != nil {
		return model.GalleryImage{}, err
	}
	return img, nil
}

func (r *GalleryGormRepository) Create(ctx context.Context, img model.GalleryImage) (model.GalleryImage, error) {
	if err := r.db.WithContext(ctx).Create(&img).Error; err != nil {
		return model.GalleryImage{}, err
	}
	return img, nil
}

func (r *GalleryGormRepository) Update(ctx context.Context, img model.GalleryImage) error {
	res := r.db.WithContext(ctx).Model(&model.GalleryImage{}).Where("id = ?", img.ID).Updates(map[string]interface{}{
		"title":       img.Title,
		"description": img.Description,
		"category":    img.Category,
		"image_url":   img.ImageURL,
		"filename":    img.Filename,
		"is_active":   img.IsActive,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *GalleryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.GalleryImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 閲覧数はアトミックに加算する
func (r *GalleryGormRepository) IncrementViews(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.GalleryImage{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *GalleryGormRepository) IncrementLikes(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.GalleryImage{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
