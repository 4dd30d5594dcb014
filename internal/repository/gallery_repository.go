package repository

import (
	"context"

	"warmdelights/internal/domain/model"
)

type GalleryRepository interface {
	// 公開一覧（is_active=trueのみ、新しい順）
	ListActive(ctx context.Context, category *model.GalleryCategory) ([]model.GalleryImage, error)

	FindByID(ctx context.Context, id int64) (model.GalleryImage, error)
	Create(ctx context.Context, img model.GalleryImage) (model.GalleryImage, error)
	Update(ctx context.Context, img model.GalleryImage) error
	Delete(ctx context.Context, id int64) error

	IncrementViews(ctx context.Context, id int64) error
	IncrementLikes(ctx context.Context, id int64) error
}
