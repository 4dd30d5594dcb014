package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/usecase"
)

type GalleryHandler struct {
	galleryUsecase *usecase.GalleryUsecase
}

// DI
func NewGalleryHandler(galleryUsecase *usecase.GalleryUsecase) *GalleryHandler {
	return &GalleryHandler{galleryUsecase: galleryUsecase}
}

// 閲覧といいねは公開、登録・更新・削除は管理者のみ
func (h *GalleryHandler) RegisterRoutes(e *echo.Echo, authMW, adminMW echo.MiddlewareFunc) {
	e.GET("/gallery", h.List)
	e.GET("/gallery/:id", h.Get)
	e.POST("/gallery/:id/like", h.Like)

	admin := e.Group("/gallery", authMW, adminMW)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *GalleryHandler) List(c echo.Context) error {
	images, err := h.galleryUsecase.ListImages(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, images)
}

func (h *GalleryHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	img, err := h.galleryUsecase.GetImage(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) Like(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.galleryUsecase.LikeImage(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Image liked"})
}

type createGalleryImageRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Filename    string `json:"filename"`
}

func (h *GalleryHandler) Create(c echo.Context) error {
	var req createGalleryImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	img, err := h.galleryUsecase.CreateImage(c.Request().Context(), usecase.CreateGalleryImageInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.GalleryCategory(req.Category),
		ImageURL:    req.ImageURL,
		Filename:    req.Filename,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, img)
}

type updateGalleryImageRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsActive    *bool   `json:"is_active"`
}

func (h *GalleryHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateGalleryImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.UpdateGalleryImageInput{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Category != nil {
		cat := model.GalleryCategory(*req.Category)
		in.Category = &cat
	}

	img, err := h.galleryUsecase.UpdateImage(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, img)
}

func (h *GalleryHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.galleryUsecase.DeleteImage(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Image removed"})
}
