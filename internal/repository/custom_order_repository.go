package repository

import (
	"context"

	"warmdelights/internal/domain/model"
)

type CustomOrderRepository interface {
	Create(ctx context.Context, co model.CustomOrder) (model.CustomOrder, error)

	// 新しい順・ページング。総件数も返す
	List(ctx context.Context, page int, limit int) ([]model.CustomOrder, int64, error)

	FindByID(ctx context.Context, id int64) (model.CustomOrder, error)
	Update(ctx context.Context, co model.CustomOrder) error
}
