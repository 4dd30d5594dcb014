package usecase

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type AnalyticsUsecase struct {
	analyticsRepo repo.AnalyticsRepository
	orderRepo     repo.OrderRepository
}

func NewAnalyticsUsecase(analyticsRepo repo.AnalyticsRepository, orderRepo repo.OrderRepository) *AnalyticsUsecase {
	return &AnalyticsUsecase{analyticsRepo: analyticsRepo, orderRepo: orderRepo}
}

type TrackEventInput struct {
	EventType model.AnalyticsEventType
	Page      string
	Method    string
	Source    string
	UserAgent string
	IP        string
	SessionID string
	UserID    *int64
	UserRole  string
	Metadata  map[string]any
}

// イベント記録。呼び出し側を失敗させない（同期版）
func (u *AnalyticsUsecase) TrackEvent(ctx context.Context, in TrackEventInput) error {
	eventType := in.EventType
	if eventType == "" {
		eventType = model.EventUnknown
	}
	if in.Page == "" {
		return NewHTTPError(http.StatusBadRequest, "page is required")
	}

	source := in.Source
	if source == "" {
		source = "direct"
	}

	err := u.analyticsRepo.Create(ctx, model.AnalyticsEvent{
		EventType: eventType,
		UserID:    in.UserID,
		UserRole:  in.UserRole,
		SessionID: in.SessionID,
		Page:      in.Page,
		Method:    in.Method,
		Source:    source,
		UserAgent: in.UserAgent,
		IP:        in.IP,
		Metadata:  in.Metadata,
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to track event")
	}
	return nil
}

// ミドルウェアから呼ぶ投げっぱなし版。結果はログだけ
func (u *AnalyticsUsecase) TrackEventAsync(in TrackEventInput) {
	go func() {
		if err := u.TrackEvent(context.Background(), in); err != nil {
			log.Warnf("analytics tracking failed: %v", err)
		}
	}()
}

type AnalyticsSummary struct {
	TotalVisitors  int64                   `json:"total_visitors"`
	TotalOrders    int64                   `json:"total_orders"`
	TotalRevenue   decimal.Decimal         `json:"total_revenue"`
	ConversionRate float64                 `json:"conversion_rate"`
	TopProducts    []repo.TopProductRow    `json:"top_products"`
	TrafficSources []repo.TrafficSourceRow `json:"traffic_sources"`
}

// 管理者向けサマリー。期間はどちらも省略可
func (u *AnalyticsUsecase) GetSummary(ctx context.Context, from, to *time.Time) (AnalyticsSummary, error) {
	pageView := model.EventPageView

	totalVisitors, err := u.analyticsRepo.CountEvents(ctx, repo.AnalyticsEventFilter{
		EventType: &pageView,
		From:      from,
		To:        to,
	})
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalOrders, err := u.orderRepo.CountCreatedBetween(ctx, from, to)
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalRevenue, err := u.orderRepo.SumTotalBetween(ctx, from, to)
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// コンバージョン率はメニュー閲覧数に対する注文数
	menuPage := "/menu"
	menuViews, err := u.analyticsRepo.CountEvents(ctx, repo.AnalyticsEventFilter{
		EventType: &pageView,
		Page:      &menuPage,
		From:      from,
		To:        to,
	})
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	conversionRate := 0.0
	if menuViews > 0 {
		conversionRate = float64(totalOrders) / float64(menuViews)
	}

	topProducts, err := u.orderRepo.TopProducts(ctx, from, to, 10)
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	trafficSources, err := u.analyticsRepo.TrafficSources(ctx, from, to)
	if err != nil {
		return AnalyticsSummary{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AnalyticsSummary{
		TotalVisitors:  totalVisitors,
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue,
		ConversionRate: conversionRate,
		TopProducts:    topProducts,
		TrafficSources: trafficSources,
	}, nil
}

// 直近イベント（最新20件）
func (u *AnalyticsUsecase) GetRecentActivity(ctx context.Context) ([]model.AnalyticsEvent, error) {
	events, err := u.analyticsRepo.ListRecent(ctx, 20)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return events, nil
}
