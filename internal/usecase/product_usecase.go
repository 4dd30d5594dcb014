package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /products。categoryは"all"か空で絞り込みなし
func (u *ProductUsecase) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	var filter *model.ProductCategory
	if category != "" && category != "all" {
		c := model.ProductCategory(category)
		if !model.ValidCategory(c) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter = &c
	}

	products, err := u.productRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return products, nil
}

// 公開詳細。販売停止は不存在と同じ扱い
func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return p, nil
}

type CreateProductInput struct {
	Name                 string
	Category             model.ProductCategory
	Price                decimal.Decimal
	MinQuantity          int64
	Unit                 model.ProductUnit
	Description          string
	Image                string
	Allergens            []string
	CustomizationOptions map[string][]string
}

// 管理者の商品登録
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if !model.ValidCategory(in.Category) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	if in.Price.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	unit := in.Unit
	if unit == "" {
		unit = model.UnitPiece
	}
	if !model.ValidUnit(unit) {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unit")
	}

	minQty := in.MinQuantity
	if minQty < 1 {
		minQty = 1
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:                 name,
		Category:             in.Category,
		Price:                in.Price,
		MinQuantity:          minQty,
		Unit:                 unit,
		Description:          in.Description,
		Image:                in.Image,
		IsActive:             true,
		Allergens:            in.Allergens,
		CustomizationOptions: in.CustomizationOptions,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 部分更新の入力。nilの項目は据え置き
type UpdateProductInput struct {
	Name                 *string
	Category             *model.ProductCategory
	Price                *decimal.Decimal
	MinQuantity          *int64
	Unit                 *model.ProductUnit
	Description          *string
	Image                *string
	IsActive             *bool
	Allergens            []string
	CustomizationOptions map[string][]string
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name is required")
		}
		p.Name = name
	}
	if in.Category != nil {
		if !model.ValidCategory(*in.Category) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		p.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid price")
		}
		p.Price = *in.Price
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 1 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid min_quantity")
		}
		p.MinQuantity = *in.MinQuantity
	}
	if in.Unit != nil {
		if !model.ValidUnit(*in.Unit) {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unit")
		}
		p.Unit = *in.Unit
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Allergens != nil {
		p.Allergens = in.Allergens
	}
	if in.CustomizationOptions != nil {
		p.CustomizationOptions = in.CustomizationOptions
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 削除は論理削除（is_activeを落とす）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
