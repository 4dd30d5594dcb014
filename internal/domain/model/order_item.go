package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。価格は確定時にカタログから取り直したスナップショット
type OrderItem struct {
	ID                  int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64             `gorm:"not null;index" json:"order_id"`
	ProductID           int64             `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string            `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPriceSnapshot   decimal.Decimal   `gorm:"type:numeric(10,2);not null;column:unit_price_snapshot" json:"unit_price_snapshot"`
	Quantity            int64             `gorm:"not null" json:"quantity"`
	Customization       map[string]string `gorm:"serializer:json" json:"customization"`
	CreatedAt           time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
}
