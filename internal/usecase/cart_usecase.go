package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

// カートの業務ロジック。明細の検証は毎回エンジン（pricing.go）を通す
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// priceは追加時点のスナップショット価格
type CartItemResponse struct {
	ProductID int64                 `json:"product_id"`
	Name      string                `json:"name"`
	Category  model.ProductCategory `json:"category"`
	Unit      model.ProductUnit     `json:"unit"`
	Price     decimal.Decimal       `json:"price"`
	Quantity  int64                 `json:"quantity"`
}

type CartResponse struct {
	Items       []CartItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	TotalItems  int64              `json:"total_items"`
}

func emptyCartResponse() CartResponse {
	return CartResponse{
		Items:       []CartItemResponse{},
		TotalAmount: decimal.Zero,
		TotalItems:  0,
	}
}

type AddCartItemInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	ProductID int64
	Quantity  int64
}

// カート取得。未作成なら空を返す（作りはしない）
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return emptyCartResponse(), nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// カートに追加。カートが無ければここで作る
// 同一商品は数量加算。加算後の数量は再検証しない（今回の追加分だけ検証する）
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	p, err := ValidateLineItem(ctx, u.productRepo, in.ProductID, in.Quantity)
	if err != nil {
		return CartResponse{}, err
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 新規行の価格はこの時点で凍結する
	if err := u.cartItemRepo.UpsertAddQuantity(ctx, cart.ID, in.ProductID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更。0は行削除の正規ルート
// 価格は取り直さない（追加時のスナップショットのまま）
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found in cart")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Quantity == 0 {
		if err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, in.ProductID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, cart.ID)
	}

	// 新しい数量で下限チェックをやり直す
	if _, err := ValidateLineItem(ctx, u.productRepo, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, err
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "Item not found in cart")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除。対象が無くても成功扱い（冪等）
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByCartAndProduct(ctx, cart.ID, productID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 全明細削除。カート自体は残る
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "Cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return emptyCartResponse(), nil
}

// 明細を集めて返却用のカートを組み立てる
// 合計はスナップショット価格で計算する（表示用。注文確定時には使わない）
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	totalAmount := decimal.Zero
	var totalItems int64 = 0

	for _, it := range items {
		resp := CartItemResponse{
			ProductID: it.ProductID,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		}

		// 表示名などはカタログから引く。引けなくても明細自体は返す
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			resp.Name = p.Name
			resp.Category = p.Category
			resp.Unit = p.Unit
		}

		respItems = append(respItems, resp)
		totalAmount = totalAmount.Add(it.UnitPriceSnapshot.Mul(decimal.NewFromInt(it.Quantity)))
		totalItems += it.Quantity
	}

	return CartResponse{Items: respItems, TotalAmount: totalAmount, TotalItems: totalItems}, nil
}
