package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/usecase"
)

type CustomOrderHandler struct {
	customOrderUsecase *usecase.CustomOrderUsecase
}

// DI
func NewCustomOrderHandler(customOrderUsecase *usecase.CustomOrderUsecase) *CustomOrderHandler {
	return &CustomOrderHandler{customOrderUsecase: customOrderUsecase}
}

// 受付は誰でも、閲覧・更新は管理者のみ
func (h *CustomOrderHandler) RegisterRoutes(e *echo.Echo, authMW, adminMW echo.MiddlewareFunc) {
	e.POST("/custom-orders", h.Create)

	admin := e.Group("/custom-orders", authMW, adminMW)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PUT("/:id", h.Update)
}

type createCustomOrderRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Size           string `json:"size"`
	Flavor         string `json:"flavor"`
	DesignNotes    string `json:"design_notes"`
	ReferenceImage string `json:"reference_image"`
}

func (h *CustomOrderHandler) Create(c echo.Context) error {
	var req createCustomOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	co, err := h.customOrderUsecase.CreateCustomOrder(c.Request().Context(), usecase.CreateCustomOrderInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Size:           req.Size,
		Flavor:         req.Flavor,
		DesignNotes:    req.DesignNotes,
		ReferenceImage: req.ReferenceImage,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, co)
}

func (h *CustomOrderHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.customOrderUsecase.ListCustomOrders(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomOrderHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	co, err := h.customOrderUsecase.GetCustomOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, co)
}

type updateCustomOrderRequest struct {
	Status      *string          `json:"status"`
	AdminNotes  *string          `json:"admin_notes"`
	QuoteAmount *decimal.Decimal `json:"quote_amount"`
}

func (h *CustomOrderHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateCustomOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.UpdateCustomOrderInput{
		AdminNotes:  req.AdminNotes,
		QuoteAmount: req.QuoteAmount,
	}
	if req.Status != nil {
		s := model.CustomOrderStatus(*req.Status)
		in.Status = &s
	}

	co, err := h.customOrderUsecase.UpdateCustomOrder(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, co)
}
