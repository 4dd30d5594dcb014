package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"warmdelights/internal/usecase"
)

type CartHandler struct {
	cartUsecase *usecase.CartUsecase
}

// DI
func NewCartHandler(cartUsecase *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

// カートは全ルート要ログイン
func (h *CartHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/cart", authMW)
	g.GET("", h.Get)
	g.POST("", h.AddItem)
	g.PUT("", h.UpdateItem)
	g.DELETE("/:productId", h.RemoveItem)
	g.DELETE("", h.Clear)
}

func (h *CartHandler) Get(c echo.Context) error {
	cart, err := h.cartUsecase.GetCart(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	cart, err := h.cartUsecase.AddItem(c.Request().Context(), getUserIDFromContext(c), usecase.AddCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	cart, err := h.cartUsecase.UpdateItem(c.Request().Context(), getUserIDFromContext(c), usecase.UpdateCartItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	cart, err := h.cartUsecase.RemoveItem(c.Request().Context(), getUserIDFromContext(c), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) Clear(c echo.Context) error {
	cart, err := h.cartUsecase.Clear(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}
