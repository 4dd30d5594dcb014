package repository

import (
	"context"

	"warmdelights/internal/domain/model"
)

type CartRepository interface {
	// 追加時はカートが無ければ作る
	GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// 更新・削除・クリア系はカートが無ければErrNotFound
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)

	// 明細の全削除。カート行自体は残す
	Clear(ctx context.Context, cartID int64) error
}
