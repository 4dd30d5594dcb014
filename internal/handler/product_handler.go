package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/middleware"
	"warmdelights/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのHTTPErrorをそのままステータスへ落とす
// それ以外は詳細を隠して500
func writeError(c echo.Context, err error) error {
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func getUserIDFromContext(c echo.Context) int64 {
	if v, ok := c.Get(middleware.CtxUserIDKey).(int64); ok {
		return v
	}
	return 0
}

func getRoleFromContext(c echo.Context) model.Role {
	if v, ok := c.Get(middleware.CtxUserRoleKey).(string); ok {
		return model.Role(v)
	}
	return ""
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

type ProductHandler struct {
	productUsecase *usecase.ProductUsecase
}

// DI
func NewProductHandler(productUsecase *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase}
}

// 閲覧は公開、変更系は管理者のみ
func (h *ProductHandler) RegisterRoutes(e *echo.Echo, authMW, adminMW echo.MiddlewareFunc) {
	e.GET("/products", h.List)
	e.GET("/products/:id", h.Get)

	admin := e.Group("/products", authMW, adminMW)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productUsecase.ListProducts(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.productUsecase.GetProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type createProductRequest struct {
	Name                 string              `json:"name"`
	Category             string              `json:"category"`
	Price                decimal.Decimal     `json:"price"`
	MinQuantity          int64               `json:"min_quantity"`
	Unit                 string              `json:"unit"`
	Description          string              `json:"description"`
	Image                string              `json:"image"`
	Allergens            []string            `json:"allergens"`
	CustomizationOptions map[string][]string `json:"customization_options"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	p, err := h.productUsecase.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:                 req.Name,
		Category:             model.ProductCategory(req.Category),
		Price:                req.Price,
		MinQuantity:          req.MinQuantity,
		Unit:                 model.ProductUnit(req.Unit),
		Description:          req.Description,
		Image:                req.Image,
		Allergens:            req.Allergens,
		CustomizationOptions: req.CustomizationOptions,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

type updateProductRequest struct {
	Name                 *string             `json:"name"`
	Category             *string             `json:"category"`
	Price                *decimal.Decimal    `json:"price"`
	MinQuantity          *int64              `json:"min_quantity"`
	Unit                 *string             `json:"unit"`
	Description          *string             `json:"description"`
	Image                *string             `json:"image"`
	IsActive             *bool               `json:"is_active"`
	Allergens            []string            `json:"allergens"`
	CustomizationOptions map[string][]string `json:"customization_options"`
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.UpdateProductInput{
		Price:                req.Price,
		MinQuantity:          req.MinQuantity,
		Description:          req.Description,
		Image:                req.Image,
		IsActive:             req.IsActive,
		Allergens:            req.Allergens,
		CustomizationOptions: req.CustomizationOptions,
	}
	in.Name = req.Name
	if req.Category != nil {
		cat := model.ProductCategory(*req.Category)
		in.Category = &cat
	}
	if req.Unit != nil {
		unit := model.ProductUnit(*req.Unit)
		in.Unit = &unit
	}

	p, err := h.productUsecase.UpdateProduct(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.productUsecase.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product removed"})
}
