package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory string

const (
	CategoryCakes     ProductCategory = "cakes"
	CategoryCookies   ProductCategory = "cookies"
	CategoryCupcakes  ProductCategory = "cupcakes"
	CategoryMuffins   ProductCategory = "muffins"
	CategoryBreads    ProductCategory = "breads"
	CategoryDoughnuts ProductCategory = "doughnuts"
	CategoryDryCakes  ProductCategory = "dry cakes"
)

// 販売単位。boxは固定重量（クッキーは250g箱）
type ProductUnit string

const (
	UnitPiece    ProductUnit = "pc"
	UnitBox      ProductUnit = "box"
	UnitKilogram ProductUnit = "kg"
)

func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryCakes, CategoryCookies, CategoryCupcakes, CategoryMuffins,
		CategoryBreads, CategoryDoughnuts, CategoryDryCakes:
		return true
	}
	return false
}

func ValidUnit(u ProductUnit) bool {
	switch u {
	case UnitPiece, UnitBox, UnitKilogram:
		return true
	}
	return false
}

// 商品。is_active=false は注文側から見えない扱いにする
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Category    ProductCategory `gorm:"type:varchar(30);not null;index:idx_products_category_active" json:"category"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	MinQuantity int64           `gorm:"not null;default:1" json:"min_quantity"`
	Unit        ProductUnit     `gorm:"type:varchar(10);not null;default:'pc'" json:"unit"`
	Description string          `gorm:"type:varchar(500)" json:"description"`
	Image       string          `gorm:"type:varchar(500)" json:"image"`
	IsActive    bool            `gorm:"not null;default:true;index:idx_products_category_active" json:"is_active"`

	Allergens            []string            `gorm:"serializer:json" json:"allergens"`
	CustomizationOptions map[string][]string `gorm:"serializer:json" json:"customization_options"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
