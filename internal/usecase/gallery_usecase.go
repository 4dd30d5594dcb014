package usecase

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

type GalleryUsecase struct {
	galleryRepo repo.GalleryRepository
}

func NewGalleryUsecase(galleryRepo repo.GalleryRepository) *GalleryUsecase {
	return &GalleryUsecase{galleryRepo: galleryRepo}
}

// 公開一覧。閲覧数の加算は表示を遅らせない（失敗はログだけ）
func (u *GalleryUsecase) ListImages(ctx context.Context, category string) ([]model.GalleryImage, error) {
	var filter *model.GalleryCategory
	if category != "" && category != "all" {
		c := model.GalleryCategory(category)
		if !model.ValidGalleryCategory(c) {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		filter = &c
	}

	images, err := u.galleryRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return images, nil
}

func (u *GalleryUsecase) GetImage(ctx context.Context, id int64) (model.GalleryImage, error) {
	if id <= 0 {
		return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	img, err := u.galleryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.GalleryImage{}, NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return model.GalleryImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.galleryRepo.IncrementViews(ctx, id); err != nil {
		log.Warnf("gallery %d: view count increment failed: %v", id, err)
	}

	return img, nil
}

func (u *GalleryUsecase) LikeImage(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.galleryRepo.IncrementLikes(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type CreateGalleryImageInput struct {
	Title       string
	Description string
	Category    model.GalleryCategory
	ImageURL    string
	Filename    string
}

// 保存名はuuidで採番する。クライアントの名前は拡張子だけ借りる
func storedFilename(imageURL, original string) string {
	ext := path.Ext(original)
	if ext == "" {
		if u, err := url.Parse(imageURL); err == nil {
			ext = path.Ext(u.Path)
		}
	}
	return uuid.NewString() + ext
}

// 管理者の画像登録。ファイル本体は外部ストレージに置かれている前提
func (u *GalleryUsecase) CreateImage(ctx context.Context, in CreateGalleryImageInput) (model.GalleryImage, error) {
	if strings.TrimSpace(in.ImageURL) == "" {
		return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "image_url is required")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Gallery Image"
	}

	category := in.Category
	if category == "" {
		category = model.GalleryCategoryCakes
	}
	if !model.ValidGalleryCategory(category) {
		return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "invalid category")
	}

	created, err := u.galleryRepo.Create(ctx, model.GalleryImage{
		Title:       title,
		Description: in.Description,
		Category:    category,
		ImageURL:    in.ImageURL,
		Filename:    storedFilename(in.ImageURL, in.Filename),
		IsActive:    true,
	})
	if err != nil {
		return model.GalleryImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 部分更新の入力。nilの項目は据え置き
type UpdateGalleryImageInput struct {
	Title       *string
	Description *string
	Category    *model.GalleryCategory
	IsActive    *bool
}

func (u *GalleryUsecase) UpdateImage(ctx context.Context, id int64, in UpdateGalleryImageInput) (model.GalleryImage, error) {
	if id <= 0 {
		return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	img, err := u.galleryRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.GalleryImage{}, NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return model.GalleryImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "title is required")
		}
		img.Title = title
	}
	if in.Description != nil {
		img.Description = *in.Description
	}
	if in.Category != nil {
		if !model.ValidGalleryCategory(*in.Category) {
			return model.GalleryImage{}, NewHTTPError(http.StatusBadRequest, "invalid category")
		}
		img.Category = *in.Category
	}
	if in.IsActive != nil {
		img.IsActive = *in.IsActive
	}

	if err := u.galleryRepo.Update(ctx, img); err != nil {
		return model.GalleryImage{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return img, nil
}

func (u *GalleryUsecase) DeleteImage(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.galleryRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Image not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
