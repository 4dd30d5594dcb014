package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/usecase"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

// DI
func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, authMW, adminMW echo.MiddlewareFunc) {
	g := e.Group("/orders", authMW)
	g.POST("", h.Create)
	g.GET("/myorders", h.ListMine)
	g.GET("/:id", h.Get)

	admin := e.Group("/orders", authMW, adminMW)
	admin.GET("", h.ListAll)
	admin.PUT("/:id", h.Update)
}

type deliveryAddressRequest struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type createOrderRequest struct {
	Items []struct {
		ProductID     int64             `json:"product_id"`
		Quantity      int64             `json:"quantity"`
		Customization map[string]string `json:"customization"`
	} `json:"items"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	DeliveryAddress      deliveryAddressRequest `json:"delivery_address"`
	ContactNumber        string                 `json:"contact_number"`
	DeliveryDate         time.Time              `json:"delivery_date"`
	DeliveryInstructions string                 `json:"delivery_instructions"`
	PaymentMethod        string                 `json:"payment_method"`
	PaymentStatus        string                 `json:"payment_status"`
	TransactionID        string                 `json:"transaction_id"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.CreateOrderInput{
		TotalAmount: req.TotalAmount,
		DeliveryAddress: usecase.DeliveryAddressInput{
			Street:   req.DeliveryAddress.Street,
			City:     req.DeliveryAddress.City,
			State:    req.DeliveryAddress.State,
			Pincode:  req.DeliveryAddress.Pincode,
			Landmark: req.DeliveryAddress.Landmark,
		},
		ContactNumber:        req.ContactNumber,
		DeliveryDate:         req.DeliveryDate,
		DeliveryInstructions: req.DeliveryInstructions,
		PaymentMethod:        model.PaymentMethod(req.PaymentMethod),
		PaymentStatus:        model.PaymentStatus(req.PaymentStatus),
		TransactionID:        req.TransactionID,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.OrderItemInput{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			Customization: it.Customization,
		})
	}

	out, err := h.orderUsecase.CreateOrder(c.Request().Context(), getUserIDFromContext(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	outs, err := h.orderUsecase.ListMyOrders(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, outs)
}

func (h *OrderHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.orderUsecase.GetOrder(c.Request().Context(), getUserIDFromContext(c), getRoleFromContext(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.orderUsecase.ListAllOrders(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateOrderRequest struct {
	Status               *string `json:"status"`
	PaymentStatus        *string `json:"payment_status"`
	DeliveryInstructions *string `json:"delivery_instructions"`
}

func (h *OrderHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.UpdateOrderInput{DeliveryInstructions: req.DeliveryInstructions}
	if req.Status != nil {
		s := model.OrderStatus(*req.Status)
		in.Status = &s
	}
	if req.PaymentStatus != nil {
		s := model.PaymentStatus(*req.PaymentStatus)
		in.PaymentStatus = &s
	}

	out, err := h.orderUsecase.UpdateOrder(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
