package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed,
		PaymentStatusRefunded:
		return true
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentMethodCOD || m == PaymentMethodOnline
}

// 注文。OrderID（WD...）は作成時に一度だけ採番する
// 明細とtotal_amountは作成後に変更しない。statusなどは管理者操作で更新される
type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    string          `gorm:"type:varchar(30);not null;uniqueIndex" json:"order_id"`
	CustomerID int64           `gorm:"not null;index" json:"customer_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`

	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	TransactionID string        `gorm:"type:varchar(255);index" json:"transaction_id"`

	// 配送先（原文どおり注文にインラインで持つ）
	DeliveryStreet   string `gorm:"type:varchar(255);not null" json:"delivery_street"`
	DeliveryCity     string `gorm:"type:varchar(100);not null" json:"delivery_city"`
	DeliveryState    string `gorm:"type:varchar(100);not null" json:"delivery_state"`
	DeliveryPincode  string `gorm:"type:varchar(20);not null" json:"delivery_pincode"`
	DeliveryLandmark string `gorm:"type:varchar(255)" json:"delivery_landmark"`

	ContactNumber        string    `gorm:"type:varchar(30);not null" json:"contact_number"`
	DeliveryDate         time.Time `gorm:"not null" json:"delivery_date"`
	DeliveryInstructions string    `gorm:"type:varchar(500)" json:"delivery_instructions"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
