package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 本人の注文一覧。新しい順
func (r *OrderGormRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 管理者向け一覧。ページングして総件数も返す
func (r *OrderGormRepository) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderGormRepository) Update(ctx context.Context, order model.Order) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
		"status":                order.Status,
		"payment_status":        order.PaymentStatus,
		"delivery_instructions": order.DeliveryInstructions,
		"transaction_id":        order.TransactionID,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Webhook由来。対象注文が無くても黙って成功にする
func (r *OrderGormRepository) UpdatePaymentStatusByTransactionID(ctx context.Context, transactionID string, status model.PaymentStatus) error {
	if transactionID == "" {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("transaction_id = ?", transactionID).
		Update("payment_status", status).Error
}

func (r *OrderGormRepository) CountCreatedBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Order{})
	tx = applyCreatedRange(tx, from, to)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderGormRepository) SumTotalBetween(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	tx := r.db.WithContext(ctx).Model(&model.Order{})
	tx = applyCreatedRange(tx, from, to)

	var sum decimal.Decimal
	err := tx.Select("COALESCE(SUM(total_amount), 0)").Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// 明細から数量・売上を商品別に集計する。並びは売上の大きい順
func (r *OrderGormRepository) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]repo.TopProductRow, error) {
	if limit < 1 {
		limit = 10
	}

	tx := r.db.WithContext(ctx).
		Table("order_items").
		Select(`order_items.product_id,
			order_items.product_name_snapshot AS name,
			SUM(order_items.quantity) AS quantity,
			SUM(order_items.unit_price_snapshot * order_items.quantity) AS revenue,
			COUNT(DISTINCT order_items.order_id) AS orders`).
		Joins("JOIN orders ON orders.id = order_items.order_id")

	if from != nil {
		tx = tx.Where("orders.created_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("orders.created_at <= ?", *to)
	}

	var rows []repo.TopProductRow
	if err := tx.
		Group("order_items.product_id, order_items.product_name_snapshot").
		Order("revenue desc").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return []repo.TopProductRow{}, err
	}
	return rows, nil
}

func applyCreatedRange(tx *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		tx = tx.Where("created_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("created_at <= ?", *to)
	}
	return tx
}
