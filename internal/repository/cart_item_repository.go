package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
)

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error)

	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error)

	// 同一商品は数量加算。新規行はsnapshot価格で作る（既存行の価格は触らない）
	UpsertAddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error

	// 無くてもエラーにしない（冪等）
	DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error
}
