package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type AnalyticsGormRepository struct {
	db *gorm.DB
}

// DI
func NewAnalyticsGormRepository(db *gorm.DB) *AnalyticsGormRepository {
	return &AnalyticsGormRepository{db: db}
}

func (r *AnalyticsGormRepository) Create(ctx context.Context, ev model.AnalyticsEvent) error {
	return r.db.WithContext(ctx).Create(&ev).Error
}

func (r *AnalyticsGormRepository) CountEvents(ctx context.Context, f repo.AnalyticsEventFilter) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.AnalyticsEvent{})

	if f.EventType != nil {
		tx = tx.Where("event_type = ?", *f.EventType)
	}
	if f.Page != nil {
		tx = tx.Where("page = ?", *f.Page)
	}
	if f.From != nil {
		tx = tx.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		tx = tx.Where("created_at <= ?", *f.To)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// 流入元別の訪問数。page_viewだけ数える
func (r *AnalyticsGormRepository) TrafficSources(ctx context.Context, from, to *time.Time) ([]repo.TrafficSourceRow, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.AnalyticsEvent{}).
		Select("source, COUNT(*) AS visitors").
		Where("event_type = ?", model.EventPageView)

	if from != nil {
		tx = tx.Where("created_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("created_at <= ?", *to)
	}

	var rows []repo.TrafficSourceRow
	if err := tx.
		Group("source").
		Order("visitors desc").
		Scan(&rows).Error; err != nil {
		return []repo.TrafficSourceRow{}, err
	}
	return rows, nil
}

func (r *AnalyticsGormRepository) ListRecent(ctx context.Context, limit int) ([]model.AnalyticsEvent, error) {
	if limit < 1 {
		limit = 20
	}

	var events []model.AnalyticsEvent
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error; err != nil {
		return []model.AnalyticsEvent{}, err
	}
	return events, nil
}
