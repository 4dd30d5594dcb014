package repository

import (
	"context"

	"gorm.io/gorm"

	repo "warmdelights/internal/repository"
)

// トランザクション内で使うリポジトリ束
type txReposGorm struct {
	orders     *OrderGormRepository
	orderItems *OrderItemGormRepository
	products   *ProductGormRepository
}

func (t *txReposGorm) Orders() repo.OrderRepository         { return t.orders }
func (t *txReposGorm) OrderItems() repo.OrderItemRepository { return t.orderItems }
func (t *txReposGorm) Products() repo.ProductRepository     { return t.products }

type TxManagerGorm struct {
	db *gorm.DB
}

// DI
func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがエラーを返せばrollback、nilならcommit
func (m *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			products:   NewProductGormRepository(tx),
		}
		return fn(repos)
	})
}
