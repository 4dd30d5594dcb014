package model

import "time"

type GalleryCategory string

const (
	GalleryCategoryCakes    GalleryCategory = "cakes"
	GalleryCategoryCookies  GalleryCategory = "cookies"
	GalleryCategoryCupcakes GalleryCategory = "cupcakes"
	GalleryCategoryCustom   GalleryCategory = "custom"
	GalleryCategoryEvents   GalleryCategory = "events"
)

func ValidGalleryCategory(c GalleryCategory) bool {
	switch c {
	case GalleryCategoryCakes, GalleryCategoryCookies, GalleryCategoryCupcakes,
		GalleryCategoryCustom, GalleryCategoryEvents:
		return true
	}
	return false
}

// ギャラリー画像。ファイル本体は外部ストレージ、ここはURLとメタだけ
type GalleryImage struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:varchar(500)" json:"description"`
	Category    GalleryCategory `gorm:"type:varchar(20);not null;default:'cakes'" json:"category"`
	ImageURL    string          `gorm:"type:varchar(500);not null" json:"image_url"`
	Filename    string          `gorm:"type:varchar(255);not null" json:"filename"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	Views       int64           `gorm:"not null;default:0" json:"views"`
	Likes       int64           `gorm:"not null;default:0" json:"likes"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
