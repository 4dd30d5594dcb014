package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

func TestTrackEvent_Defaults(t *testing.T) {
	analytics := new(mockAnalyticsRepo)
	uc := NewAnalyticsUsecase(analytics, new(mockOrderRepo))

	var saved model.AnalyticsEvent
	analytics.On("Create", mock.Anything, mock.MatchedBy(func(ev model.AnalyticsEvent) bool {
		saved = ev
		return true
	})).Return(nil)

	err := uc.TrackEvent(context.Background(), TrackEventInput{Page: "/menu"})
	assert.NoError(t, err)

	// 種別と流入元はデフォルトで補完
	assert.Equal(t, model.EventUnknown, saved.EventType)
	assert.Equal(t, "direct", saved.Source)
}

func TestTrackEvent_PageRequired(t *testing.T) {
	analytics := new(mockAnalyticsRepo)
	uc := NewAnalyticsUsecase(analytics, new(mockOrderRepo))

	err := uc.TrackEvent(context.Background(), TrackEventInput{EventType: model.EventPageView})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, "page is required", he.Message)

	analytics.AssertNotCalled(t, "Create")
}

func TestGetSummary_ConversionRate(t *testing.T) {
	analytics := new(mockAnalyticsRepo)
	orders := new(mockOrderRepo)
	uc := NewAnalyticsUsecase(analytics, orders)

	pageView := model.EventPageView
	menuPage := "/menu"

	// 全page_view
	analytics.On("CountEvents", mock.Anything, repo.AnalyticsEventFilter{EventType: &pageView}).Return(int64(1000), nil)
	// メニュー閲覧
	analytics.On("CountEvents", mock.Anything, repo.AnalyticsEventFilter{EventType: &pageView, Page: &menuPage}).Return(int64(200), nil)
	analytics.On("TrafficSources", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return([]repo.TrafficSourceRow{
		{Source: "direct", Visitors: 700},
	}, nil)

	orders.On("CountCreatedBetween", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(int64(50), nil)
	orders.On("SumTotalBetween", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(decimal.RequireFromString("42000.00"), nil)
	orders.On("TopProducts", mock.Anything, (*time.Time)(nil), (*time.Time)(nil), 10).Return([]repo.TopProductRow{}, nil)

	summary, err := uc.GetSummary(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), summary.TotalVisitors)
	assert.Equal(t, int64(50), summary.TotalOrders)
	assert.True(t, summary.TotalRevenue.Equal(decimal.RequireFromString("42000.00")))
	assert.InDelta(t, 0.25, summary.ConversionRate, 1e-9)
	assert.Len(t, summary.TrafficSources, 1)
}

func TestGetSummary_NoMenuViewsMeansZeroConversion(t *testing.T) {
	analytics := new(mockAnalyticsRepo)
	orders := new(mockOrderRepo)
	uc := NewAnalyticsUsecase(analytics, orders)

	pageView := model.EventPageView
	menuPage := "/menu"

	analytics.On("CountEvents", mock.Anything, repo.AnalyticsEventFilter{EventType: &pageView}).Return(int64(0), nil)
	analytics.On("CountEvents", mock.Anything, repo.AnalyticsEventFilter{EventType: &pageView, Page: &menuPage}).Return(int64(0), nil)
	analytics.On("TrafficSources", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return([]repo.TrafficSourceRow{}, nil)

	orders.On("CountCreatedBetween", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(int64(5), nil)
	orders.On("SumTotalBetween", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(decimal.Zero, nil)
	orders.On("TopProducts", mock.Anything, (*time.Time)(nil), (*time.Time)(nil), 10).Return([]repo.TopProductRow{}, nil)

	summary, err := uc.GetSummary(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.ConversionRate)
}
