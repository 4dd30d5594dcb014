package usecase

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

func validCreateOrderInput(total string) CreateOrderInput {
	return CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 4},
		},
		TotalAmount: decimal.RequireFromString(total),
		DeliveryAddress: DeliveryAddressInput{
			Street:  "12 Baker Street",
			City:    "Pune",
			State:   "Maharashtra",
			Pincode: "411001",
		},
		ContactNumber: "9876543210",
		DeliveryDate:  time.Now().Add(48 * time.Hour),
		PaymentMethod: model.PaymentMethodCOD,
	}
}

func newOrderUsecaseForTest() (*OrderUsecase, *stubTxManager, *mockOrderRepo, *mockOrderItemRepo, *mockProductRepo, *mockUserRepo, *recordingSender) {
	orders := new(mockOrderRepo)
	orderItems := new(mockOrderItemRepo)
	products := new(mockProductRepo)
	users := new(mockUserRepo)
	tx := &stubTxManager{orders: orders, orderItems: orderItems, products: products}
	sender := newRecordingSender()
	uc := NewOrderUsecase(tx, users, NewWDOrderIDGenerator(), sender)
	return uc, tx, orders, orderItems, products, users, sender
}

func TestCreateOrder_PersistsComputedTotal(t *testing.T) {
	uc, _, orders, orderItems, products, users, sender := newOrderUsecaseForTest()

	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)

	var saved model.Order
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		saved = o
		return true
	})).Return(int64(42), nil)
	orderItems.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	users.On("FindByID", mock.Anything, int64(10)).Return(model.User{ID: 10, Name: "Asha", Email: "asha@example.com"}, nil)

	out, err := uc.CreateOrder(context.Background(), 10, validCreateOrderInput("80.00"))
	assert.NoError(t, err)

	// 保存される合計は必ず計算結果
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("80.00")), "got %s", saved.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, saved.Status)
	assert.Equal(t, int64(10), saved.CustomerID)
	assert.Equal(t, int64(42), out.ID)

	// 注文番号の形式
	assert.Regexp(t, regexp.MustCompile(`^WD\d{13}\d{4}$`), out.OrderID)

	// 確認メールが飛ぶ
	select {
	case sent := <-sender.orderSent:
		assert.Equal(t, out.OrderID, sent.OrderID)
	case <-time.After(time.Second):
		t.Fatal("confirmation email was not dispatched")
	}
}

func TestCreateOrder_DeclaredTotalMismatch(t *testing.T) {
	uc, _, orders, _, products, _, _ := newOrderUsecaseForTest()

	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)

	// 実際は80.00のところを100.00と申告
	_, err := uc.CreateOrder(context.Background(), 10, validCreateOrderInput("100.00"))
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "Total amount mismatch", he.Message)

	// 何も保存されない
	orders.AssertNotCalled(t, "Create")
}

func TestCreateOrder_InactiveProductRejected(t *testing.T) {
	uc, _, orders, _, products, _, _ := newOrderUsecaseForTest()

	inactive := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	inactive.IsActive = false
	products.On("FindByID", mock.Anything, int64(1)).Return(inactive, nil)

	_, err := uc.CreateOrder(context.Background(), 10, validCreateOrderInput("80.00"))
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "Product not found", he.Message)

	orders.AssertNotCalled(t, "Create")
}

func TestCreateOrder_NotificationFailureDoesNotFailOrder(t *testing.T) {
	uc, _, orders, orderItems, products, users, sender := newOrderUsecaseForTest()
	sender.fail = true

	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)
	orders.On("Create", mock.Anything, mock.Anything).Return(int64(42), nil)
	orderItems.On("CreateBulk", mock.Anything, int64(42), mock.Anything).Return(nil)
	users.On("FindByID", mock.Anything, int64(10)).Return(model.User{ID: 10, Email: "asha@example.com"}, nil)

	out, err := uc.CreateOrder(context.Background(), 10, validCreateOrderInput("80.00"))
	assert.NoError(t, err)
	assert.NotEmpty(t, out.OrderID)

	<-sender.orderSent
}

func TestCreateOrder_InputGuards(t *testing.T) {
	uc, _, _, _, _, _, _ := newOrderUsecaseForTest()

	in := validCreateOrderInput("80.00")
	in.Items = nil
	_, err := uc.CreateOrder(context.Background(), 10, in)
	he, _ := AsHTTPError(err)
	assert.Equal(t, "order has no items", he.Message)

	in = validCreateOrderInput("80.00")
	in.PaymentMethod = "bitcoin"
	_, err = uc.CreateOrder(context.Background(), 10, in)
	he, _ = AsHTTPError(err)
	assert.Equal(t, "invalid payment_method", he.Message)

	in = validCreateOrderInput("80.00")
	in.DeliveryAddress.City = ""
	_, err = uc.CreateOrder(context.Background(), 10, in)
	he, _ = AsHTTPError(err)
	assert.Equal(t, "delivery address is incomplete", he.Message)
}

func TestGetOrder_OwnershipCheck(t *testing.T) {
	uc, _, orders, orderItems, _, _, _ := newOrderUsecaseForTest()

	order := model.Order{ID: 42, OrderID: "WD1", CustomerID: 10}
	orders.On("FindByID", mock.Anything, int64(42)).Return(order, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	// 他人はuserロールでは見られない
	_, err := uc.GetOrder(context.Background(), 11, model.RoleUser, 42)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "Not authorized", he.Message)

	// 本人は見られる
	out, err := uc.GetOrder(context.Background(), 10, model.RoleUser, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)

	// 管理者は他人の注文も見られる
	out, err = uc.GetOrder(context.Background(), 11, model.RoleAdmin, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
}

func TestUpdateOrder_PartialUpdate(t *testing.T) {
	uc, _, orders, orderItems, _, _, _ := newOrderUsecaseForTest()

	existing := model.Order{
		ID:            42,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
	orders.On("FindByID", mock.Anything, int64(42)).Return(existing, nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(42)).Return([]model.OrderItem{}, nil)

	var saved model.Order
	orders.On("Update", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		saved = o
		return true
	})).Return(nil)

	status := model.OrderStatusConfirmed
	out, err := uc.UpdateOrder(context.Background(), 42, UpdateOrderInput{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, out.Status)

	// 指定しなかった項目は据え置き
	assert.Equal(t, model.PaymentStatusPending, saved.PaymentStatus)
}

func TestUpdateOrder_InvalidStatus(t *testing.T) {
	uc, _, orders, _, _, _, _ := newOrderUsecaseForTest()

	bad := model.OrderStatus("shipped")
	_, err := uc.UpdateOrder(context.Background(), 42, UpdateOrderInput{Status: &bad})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	orders.AssertNotCalled(t, "FindByID")
}

func TestListAllOrders_Paging(t *testing.T) {
	uc, _, orders, orderItems, _, _, _ := newOrderUsecaseForTest()

	orders.On("ListAdmin", mock.Anything, repo.AdminOrderListFilter{Page: 2, Limit: 10}).
		Return([]model.Order{{ID: 1}}, int64(25), nil)
	orderItems.On("ListByOrderID", mock.Anything, int64(1)).Return([]model.OrderItem{}, nil)

	out, err := uc.ListAllOrders(context.Background(), 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, int64(3), out.Pages)
	assert.Equal(t, int64(25), out.Total)
	assert.Len(t, out.Orders, 1)
}
