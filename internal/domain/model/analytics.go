package model

import "time"

type AnalyticsEventType string

const (
	EventPageView           AnalyticsEventType = "page_view"
	EventAPICall            AnalyticsEventType = "api_call"
	EventLoginAttempt       AnalyticsEventType = "login_attempt"
	EventRegistration       AnalyticsEventType = "registration_attempt"
	EventOrderCreated       AnalyticsEventType = "order_created"
	EventCustomOrderRequest AnalyticsEventType = "custom_order_request"
	EventGalleryView        AnalyticsEventType = "gallery_view"
	EventProductBrowse      AnalyticsEventType = "product_browse"
	EventAddToCart          AnalyticsEventType = "add_to_cart"
	EventRemoveFromCart     AnalyticsEventType = "remove_from_cart"
	EventSearchProducts     AnalyticsEventType = "search_products"
	EventAdminAccess        AnalyticsEventType = "admin_access"
	EventUnknown            AnalyticsEventType = "unknown_event"
)

// アクセス解析イベント。書き込みはfire-and-forget
type AnalyticsEvent struct {
	ID        int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType AnalyticsEventType `gorm:"type:varchar(40);not null;index:idx_analytics_type_created" json:"event_type"`
	UserID    *int64             `gorm:"index" json:"user_id"`
	UserRole  string             `gorm:"type:varchar(10)" json:"user_role"`
	SessionID string             `gorm:"type:varchar(64);index" json:"session_id"`
	Page      string             `gorm:"type:varchar(255);not null" json:"page"`
	Method    string             `gorm:"type:varchar(10)" json:"method"`
	Source    string             `gorm:"type:varchar(255);default:'direct'" json:"source"`
	UserAgent string             `gorm:"type:varchar(500)" json:"user_agent"`
	IP        string             `gorm:"type:varchar(64)" json:"ip"`
	Metadata  map[string]any     `gorm:"serializer:json" json:"metadata"`
	CreatedAt time.Time          `gorm:"not null;autoCreateTime;index:idx_analytics_type_created" json:"created_at"`
}
