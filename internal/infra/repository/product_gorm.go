package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみ。並びはカテゴリ→商品名
func (r *ProductGormRepository) ListActive(ctx context.Context, category *model.ProductCategory) ([]model.Product, error) {
	tx := r.db.WithContext(ctx).Where("is_active = ?", true)

	if category != nil {
		tx = tx.Where("category = ?", *category)
	}

	var products []model.Product
	if err := tx.Order("category asc").Order("name asc").Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":                  p.Name,
		"category":              p.Category,
		"price":                 p.Price,
		"min_quantity":          p.MinQuantity,
		"unit":                  p.Unit,
		"description":           p.Description,
		"image":                 p.Image,
		"is_active":             p.IsActive,
		"allergens":             p.Allergens,
		"customization_options": p.CustomizationOptions,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 論理削除。行は残してis_activeだけ落とす
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
