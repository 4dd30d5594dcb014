package usecase

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

// 合計金額の許容誤差（通貨の最小単位1つ分）
var totalTolerance = decimal.New(1, -2)

type RequestedItem struct {
	ProductID     int64
	Quantity      int64
	Customization map[string]string
}

// 検証を通った明細。価格は検証時点のカタログ値で確定
type PricedItem struct {
	ProductID     int64
	Name          string
	Category      model.ProductCategory
	Unit          model.ProductUnit
	Quantity      int64
	UnitPrice     decimal.Decimal
	Customization map[string]string
}

// カテゴリ別の下限。商品のmin_quantityより優先する
// カップケーキ・マフィンは4個から。箱売りクッキーは1箱（250g）から
func EffectiveMinQuantity(p model.Product) int64 {
	if p.Category == model.CategoryCupcakes || p.Category == model.CategoryMuffins {
		return 4
	}
	if p.Category == model.CategoryCookies && p.Unit == model.UnitBox {
		return 1
	}
	return p.MinQuantity
}

// 1明細の検証。販売停止と不存在は外からは区別させない
func ValidateLineItem(ctx context.Context, products repo.ProductRepository, productID int64, quantity int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity < 1 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := products.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}

	min := EffectiveMinQuantity(p)
	if quantity < min {
		return model.Product{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Minimum order for %s is %d %s", p.Name, min, p.Unit))
	}

	return p, nil
}

// 注文全体の検証と値付け。最初に失敗した明細で打ち切る
// 価格はこの時点のカタログ値を採用し、クライアント申告の単価は一切信用しない
// declaredTotalが渡されたら計算結果と突き合わせる（差が0.01を超えたら改ざん扱い）
func ValidateAndPrice(ctx context.Context, products repo.ProductRepository, items []RequestedItem, declaredTotal *decimal.Decimal) ([]PricedItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, NewHTTPError(http.StatusBadRequest, "order has no items")
	}

	priced := make([]PricedItem, 0, len(items))
	total := decimal.Zero

	for _, it := range items {
		p, err := ValidateLineItem(ctx, products, it.ProductID, it.Quantity)
		if err != nil {
			return nil, decimal.Zero, err
		}

		priced = append(priced, PricedItem{
			ProductID:     p.ID,
			Name:          p.Name,
			Category:      p.Category,
			Unit:          p.Unit,
			Quantity:      it.Quantity,
			UnitPrice:     p.Price,
			Customization: it.Customization,
		})

		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}

	if declaredTotal != nil {
		if total.Sub(*declaredTotal).Abs().GreaterThan(totalTolerance) {
			return nil, decimal.Zero, NewHTTPError(http.StatusBadRequest, "Total amount mismatch")
		}
	}

	return priced, total, nil
}
