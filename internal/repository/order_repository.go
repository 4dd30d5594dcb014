package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
)

// 管理者の注文一覧の絞り込み
type AdminOrderListFilter struct {
	Page  int
	Limit int
}

// 分析サマリー用の売れ筋集計行
type TopProductRow struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int64           `json:"orders"`
}

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error)
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// 部分更新後の保存。明細・合計は作成後に変更しない前提
	Update(ctx context.Context, order model.Order) error

	// 決済Webhook用。該当なしでもエラーにしない
	UpdatePaymentStatusByTransactionID(ctx context.Context, transactionID string, status model.PaymentStatus) error

	// 分析サマリー用の集計
	CountCreatedBetween(ctx context.Context, from, to *time.Time) (int64, error)
	SumTotalBetween(ctx context.Context, from, to *time.Time) (decimal.Decimal, error)
	TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]TopProductRow, error)
}
