package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/notification"
	repo "warmdelights/internal/repository"
)

var assertErr = errors.New("boom")

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) ListActive(ctx context.Context, category *model.ProductCategory) ([]model.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *mockCartRepo) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Cart), args.Error(1)
}

func (m *mockCartRepo) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type mockCartItemRepo struct {
	mock.Mock
}

func (m *mockCartItemRepo) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *mockCartItemRepo) FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	return args.Get(0).(model.CartItem), args.Error(1)
}

func (m *mockCartItemRepo) UpsertAddQuantity(ctx context.Context, cartID int64, productID int64, addQty int64, unitPriceSnapshot decimal.Decimal) error {
	args := m.Called(ctx, cartID, productID, addQty, unitPriceSnapshot)
	return args.Error(0)
}

func (m *mockCartItemRepo) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *mockCartItemRepo) DeleteByCartAndProduct(ctx context.Context, cartID int64, productID int64) error {
	args := m.Called(ctx, cartID, productID)
	return args.Error(0)
}

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *mockOrderRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Order, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *mockOrderRepo) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) Update(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdatePaymentStatusByTransactionID(ctx context.Context, transactionID string, status model.PaymentStatus) error {
	args := m.Called(ctx, transactionID, status)
	return args.Error(0)
}

func (m *mockOrderRepo) CountCreatedBetween(ctx context.Context, from, to *time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) SumTotalBetween(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockOrderRepo) TopProducts(ctx context.Context, from, to *time.Time, limit int) ([]repo.TopProductRow, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]repo.TopProductRow), args.Error(1)
}

type mockOrderItemRepo struct {
	mock.Mock
}

func (m *mockOrderItemRepo) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *mockOrderItemRepo) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

type mockCustomOrderRepo struct {
	mock.Mock
}

func (m *mockCustomOrderRepo) Create(ctx context.Context, co model.CustomOrder) (model.CustomOrder, error) {
	args := m.Called(ctx, co)
	return args.Get(0).(model.CustomOrder), args.Error(1)
}

func (m *mockCustomOrderRepo) List(ctx context.Context, page int, limit int) ([]model.CustomOrder, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]model.CustomOrder), args.Get(1).(int64), args.Error(2)
}

func (m *mockCustomOrderRepo) FindByID(ctx context.Context, id int64) (model.CustomOrder, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.CustomOrder), args.Error(1)
}

func (m *mockCustomOrderRepo) Update(ctx context.Context, co model.CustomOrder) error {
	args := m.Called(ctx, co)
	return args.Error(0)
}

type mockGalleryRepo struct {
	mock.Mock
}

func (m *mockGalleryRepo) ListActive(ctx context.Context, category *model.GalleryCategory) ([]model.GalleryImage, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]model.GalleryImage), args.Error(1)
}

func (m *mockGalleryRepo) FindByID(ctx context.Context, id int64) (model.GalleryImage, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.GalleryImage), args.Error(1)
}

func (m *mockGalleryRepo) Create(ctx context.Context, img model.GalleryImage) (model.GalleryImage, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(model.GalleryImage), args.Error(1)
}

func (m *mockGalleryRepo) Update(ctx context.Context, img model.GalleryImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *mockGalleryRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGalleryRepo) IncrementViews(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGalleryRepo) IncrementLikes(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockAnalyticsRepo struct {
	mock.Mock
}

func (m *mockAnalyticsRepo) Create(ctx context.Context, ev model.AnalyticsEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *mockAnalyticsRepo) CountEvents(ctx context.Context, f repo.AnalyticsEventFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAnalyticsRepo) TrafficSources(ctx context.Context, from, to *time.Time) ([]repo.TrafficSourceRow, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repo.TrafficSourceRow), args.Error(1)
}

func (m *mockAnalyticsRepo) ListRecent(ctx context.Context, limit int) ([]model.AnalyticsEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.AnalyticsEvent), args.Error(1)
}

// トランザクションは素通しで、渡したモックをそのまま使わせる
type stubTxManager struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
}

func (s *stubTxManager) Orders() repo.OrderRepository         { return s.orders }
func (s *stubTxManager) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s *stubTxManager) Products() repo.ProductRepository     { return s.products }

func (s *stubTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s)
}

// 送信をチャネルで通知する。goroutine越しの送信を待ち合わせるため
type recordingSender struct {
	orderSent  chan model.Order
	customSent chan model.CustomOrder
	fail       bool
}

func newRecordingSender() *recordingSender {
	return &recordingSender{
		orderSent:  make(chan model.Order, 1),
		customSent: make(chan model.CustomOrder, 1),
	}
}

func (s *recordingSender) SendOrderConfirmation(ctx context.Context, order model.Order, items []model.OrderItem, customer notification.CustomerContact) error {
	s.orderSent <- order
	if s.fail {
		return assertErr
	}
	return nil
}

func (s *recordingSender) SendCustomOrderConfirmation(ctx context.Context, co model.CustomOrder) error {
	s.customSent <- co
	if s.fail {
		return assertErr
	}
	return nil
}
