package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomOrderStatus string

const (
	CustomOrderStatusPending   CustomOrderStatus = "pending"
	CustomOrderStatusReviewing CustomOrderStatus = "reviewing"
	CustomOrderStatusQuoted    CustomOrderStatus = "quoted"
	CustomOrderStatusAccepted  CustomOrderStatus = "accepted"
	CustomOrderStatusRejected  CustomOrderStatus = "rejected"
	CustomOrderStatusCompleted CustomOrderStatus = "completed"
)

func ValidCustomOrderStatus(s CustomOrderStatus) bool {
	switch s {
	case CustomOrderStatusPending, CustomOrderStatusReviewing, CustomOrderStatusQuoted,
		CustomOrderStatusAccepted, CustomOrderStatusRejected, CustomOrderStatusCompleted:
		return true
	}
	return false
}

// ケーキ等の特注依頼。会員登録なしで受け付ける
type CustomOrder struct {
	ID             int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string            `gorm:"type:varchar(255);not null" json:"name"`
	Email          string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone          string            `gorm:"type:varchar(30);not null" json:"phone"`
	Size           string            `gorm:"type:varchar(100)" json:"size"`
	Flavor         string            `gorm:"type:varchar(100)" json:"flavor"`
	DesignNotes    string            `gorm:"type:varchar(1000)" json:"design_notes"`
	ReferenceImage string            `gorm:"type:varchar(500)" json:"reference_image"`
	Status         CustomOrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	AdminNotes     string            `gorm:"type:varchar(1000)" json:"admin_notes"`
	QuoteAmount    decimal.Decimal   `gorm:"type:numeric(10,2)" json:"quote_amount"`
	CreatedAt      time.Time         `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
