package repository

import (
	"context"
	"time"

	"warmdelights/internal/domain/model"
)

// イベント件数の絞り込み
type AnalyticsEventFilter struct {
	EventType *model.AnalyticsEventType
	Page      *string
	From      *time.Time
	To        *time.Time
}

// 流入元ごとの訪問数
type TrafficSourceRow struct {
	Source   string `json:"source"`
	Visitors int64  `json:"visitors"`
}

type AnalyticsRepository interface {
	Create(ctx context.Context, ev model.AnalyticsEvent) error
	CountEvents(ctx context.Context, f AnalyticsEventFilter) (int64, error)
	TrafficSources(ctx context.Context, from, to *time.Time) ([]TrafficSourceRow, error)
	ListRecent(ctx context.Context, limit int) ([]model.AnalyticsEvent, error)
}
