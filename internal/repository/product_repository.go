package repository

import (
	"context"
	"errors"

	"warmdelights/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化だけを約束する。業務判断はusecase側
type ProductRepository interface {
	// 公開一覧（is_active=trueのみ、category→name順）
	ListActive(ctx context.Context, category *model.ProductCategory) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error

	// 物理削除はしない。is_activeを落とすだけ
	SoftDelete(ctx context.Context, id int64) error
}
