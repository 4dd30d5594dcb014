package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DryRunでSQLだけ組み立てて検証する。DB接続は張らない
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=warmdelights dbname=warmdelights",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("dry-run db: %v", err)
	}

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	return db, &captured
}

func TestTopProducts_SortsByRevenue(t *testing.T) {
	db, captured := newDryRunDB(t)
	r := NewOrderGormRepository(db)

	_, err := r.TopProducts(context.Background(), nil, nil, 10)
	assert.NoError(t, err)

	sql := strings.ToLower(*captured)

	// 売れ筋は売上額の降順。個数の多い安売り商品が上に来てはいけない
	assert.Contains(t, sql, "order by revenue desc")
	assert.NotContains(t, sql, "order by quantity desc")

	// 集計列がそろっていること
	assert.Contains(t, sql, "sum(order_items.quantity) as quantity")
	assert.Contains(t, sql, "sum(order_items.unit_price_snapshot * order_items.quantity) as revenue")
}

func TestTopProducts_AppliesDateRange(t *testing.T) {
	db, captured := newDryRunDB(t)
	r := NewOrderGormRepository(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := r.TopProducts(context.Background(), &from, &to, 5)
	assert.NoError(t, err)

	sql := strings.ToLower(*captured)
	assert.Contains(t, sql, "orders.created_at >=")
	assert.Contains(t, sql, "orders.created_at <=")
}
