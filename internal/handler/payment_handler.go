package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warmdelights/internal/usecase"
)

type PaymentHandler struct {
	paymentUsecase *usecase.PaymentUsecase
}

// DI
func NewPaymentHandler(paymentUsecase *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// webhookは署名検証があるので認証なし
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/payments/create-intent", h.CreateIntent, authMW)
	e.POST("/payments/webhook", h.Webhook)
}

type createIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	OrderRef string          `json:"order_ref"`
}

func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req createIntentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.paymentUsecase.CreateIntent(c.Request().Context(), getUserIDFromContext(c), usecase.CreateIntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		OrderRef: req.OrderRef,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 署名検証のため生のボディをそのまま渡す
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if err := h.paymentUsecase.HandleWebhook(c.Request().Context(), payload, sig); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"received": "true"})
}
