package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/notification"
	repo "warmdelights/internal/repository"
)

// 注文の業務ロジック。確定時の検証と値付けはエンジンに委譲する
type OrderUsecase struct {
	tx       repo.TransactionManager
	users    repo.UserRepository
	idGen    OrderIDGenerator
	notifier notification.Sender
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	idGen OrderIDGenerator,
	notifier notification.Sender,
) *OrderUsecase {
	return &OrderUsecase{
		tx:       tx,
		users:    users,
		idGen:    idGen,
		notifier: notifier,
	}
}

type OrderItemInput struct {
	ProductID     int64             `json:"product_id"`
	Quantity      int64             `json:"quantity"`
	Customization map[string]string `json:"customization"`
}

type DeliveryAddressInput struct {
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Landmark string `json:"landmark"`
}

type CreateOrderInput struct {
	Items []OrderItemInput

	// クライアント申告の合計。検証にだけ使い、保存はしない
	TotalAmount decimal.Decimal

	DeliveryAddress      DeliveryAddressInput
	ContactNumber        string
	DeliveryDate         time.Time
	DeliveryInstructions string
	PaymentMethod        model.PaymentMethod
	PaymentStatus        model.PaymentStatus
	TransactionID        string
}

type OrderItemOutput struct {
	ProductID     int64             `json:"product_id"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	Quantity      int64             `json:"quantity"`
	Customization map[string]string `json:"customization,omitempty"`
}

type OrderOutput struct {
	ID                   int64               `json:"id"`
	OrderID              string              `json:"order_id"`
	CustomerID           int64               `json:"customer_id"`
	Status               model.OrderStatus   `json:"status"`
	PaymentStatus        model.PaymentStatus `json:"payment_status"`
	PaymentMethod        model.PaymentMethod `json:"payment_method"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	DeliveryAddress      DeliveryAddressInput `json:"delivery_address"`
	ContactNumber        string              `json:"contact_number"`
	DeliveryDate         time.Time           `json:"delivery_date"`
	DeliveryInstructions string              `json:"delivery_instructions"`
	CreatedAt            time.Time           `json:"created_at"`
	Items                []OrderItemOutput   `json:"items"`
}

// 注文確定。明細検証→値付け→保存→確認メール（ベストエフォート）
// 保存する合計は必ずエンジンの計算結果。申告値は突き合わせにしか使わない
func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order has no items")
	}
	if !model.ValidPaymentMethod(in.PaymentMethod) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	paymentStatus := in.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = model.PaymentStatusPending
	}
	if !model.ValidPaymentStatus(paymentStatus) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	if strings.TrimSpace(in.DeliveryAddress.Street) == "" ||
		strings.TrimSpace(in.DeliveryAddress.City) == "" ||
		strings.TrimSpace(in.DeliveryAddress.State) == "" ||
		strings.TrimSpace(in.DeliveryAddress.Pincode) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery address is incomplete")
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "contact_number is required")
	}
	if in.DeliveryDate.IsZero() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery_date is required")
	}
	if len(in.DeliveryInstructions) > 500 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery_instructions too long")
	}

	requested := make([]RequestedItem, 0, len(in.Items))
	for _, it := range in.Items {
		requested = append(requested, RequestedItem{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			Customization: it.Customization,
		})
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 価格は確定時点のカタログ値で取り直す（カートのスナップショットは使わない）
		priced, total, err := ValidateAndPrice(ctx, r.Products(), requested, &in.TotalAmount)
		if err != nil {
			return err
		}

		now := time.Now()
		order := model.Order{
			OrderID:              u.idGen.NewOrderID(now),
			CustomerID:           userID,
			TotalAmount:          total,
			Status:               model.OrderStatusPending,
			PaymentStatus:        paymentStatus,
			PaymentMethod:        in.PaymentMethod,
			TransactionID:        in.TransactionID,
			DeliveryStreet:       in.DeliveryAddress.Street,
			DeliveryCity:         in.DeliveryAddress.City,
			DeliveryState:        in.DeliveryAddress.State,
			DeliveryPincode:      in.DeliveryAddress.Pincode,
			DeliveryLandmark:     in.DeliveryAddress.Landmark,
			ContactNumber:        in.ContactNumber,
			DeliveryDate:         in.DeliveryDate,
			DeliveryInstructions: in.DeliveryInstructions,
			CreatedAt:            now,
			UpdatedAt:            now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items := make([]model.OrderItem, 0, len(priced))
		for _, pi := range priced {
			items = append(items, model.OrderItem{
				OrderID:             orderID,
				ProductID:           pi.ProductID,
				ProductNameSnapshot: pi.Name,
				UnitPriceSnapshot:   pi.UnitPrice,
				Quantity:            pi.Quantity,
				Customization:       pi.Customization,
				CreatedAt:           now,
			})
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.dispatchConfirmation(ctx, out)

	return out, nil
}

// 確認メールは投げっぱなし。失敗はログして握りつぶす
func (u *OrderUsecase) dispatchConfirmation(ctx context.Context, out OrderOutput) {
	customer, err := u.users.FindByID(ctx, out.CustomerID)
	if err != nil {
		log.Errorf("order %s: customer lookup for confirmation failed: %v", out.OrderID, err)
		return
	}

	order := model.Order{
		OrderID:      out.OrderID,
		TotalAmount:  out.TotalAmount,
		DeliveryDate: out.DeliveryDate,
	}
	items := make([]model.OrderItem, 0, len(out.Items))
	for _, it := range out.Items {
		items = append(items, model.OrderItem{
			ProductNameSnapshot: it.Name,
			UnitPriceSnapshot:   it.Price,
			Quantity:            it.Quantity,
		})
	}

	go func() {
		err := u.notifier.SendOrderConfirmation(context.Background(), order, items, notification.CustomerContact{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		})
		if err != nil {
			log.Errorf("order %s: confirmation email failed: %v", out.OrderID, err)
		}
	}()
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]OrderOutput, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// 注文詳細。本人か管理者だけ見られる
func (u *OrderUsecase) GetOrder(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if o.CustomerID != userID && role != model.RoleAdmin {
			return NewHTTPError(http.StatusUnauthorized, "Not authorized")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

type AdminOrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Page   int           `json:"page"`
	Pages  int64         `json:"pages"`
	Total  int64         `json:"total"`
}

// 管理者の全注文一覧（ページング）
func (u *OrderUsecase) ListAllOrders(ctx context.Context, page, limit int) (AdminOrderListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var out AdminOrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{Page: page, Limit: limit})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		pages := total / int64(limit)
		if total%int64(limit) != 0 {
			pages++
		}

		out = AdminOrderListOutput{Orders: outs, Page: page, Pages: pages, Total: total}
		return nil
	})
	if err != nil {
		return AdminOrderListOutput{}, err
	}
	return out, nil
}

// 部分更新の入力。nilの項目は据え置き
type UpdateOrderInput struct {
	Status               *model.OrderStatus
	PaymentStatus        *model.PaymentStatus
	DeliveryInstructions *string
}

// 管理者による注文更新。ステータス遷移の制約は意図的に設けていない
// （どの状態からどの状態へも変えられる。履歴管理が欲しくなったら別途）
func (u *OrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in UpdateOrderInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status != nil && !model.ValidOrderStatus(*in.Status) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.PaymentStatus != nil && !model.ValidPaymentStatus(*in.PaymentStatus) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if in.Status != nil {
			o.Status = *in.Status
		}
		if in.PaymentStatus != nil {
			o.PaymentStatus = *in.PaymentStatus
		}
		if in.DeliveryInstructions != nil {
			o.DeliveryInstructions = *in.DeliveryInstructions
		}

		if err := r.Orders().Update(ctx, o); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:     it.ProductID,
			Name:          it.ProductNameSnapshot,
			Price:         it.UnitPriceSnapshot,
			Quantity:      it.Quantity,
			Customization: it.Customization,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		OrderID:       o.OrderID,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		TotalAmount:   o.TotalAmount,
		DeliveryAddress: DeliveryAddressInput{
			Street:   o.DeliveryStreet,
			City:     o.DeliveryCity,
			State:    o.DeliveryState,
			Pincode:  o.DeliveryPincode,
			Landmark: o.DeliveryLandmark,
		},
		ContactNumber:        o.ContactNumber,
		DeliveryDate:         o.DeliveryDate,
		DeliveryInstructions: o.DeliveryInstructions,
		CreatedAt:            o.CreatedAt,
		Items:                outItems,
	}
}
