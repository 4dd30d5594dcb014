package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warmdelights/internal/domain/model"
	repo "warmdelights/internal/repository"
)

func activeProduct(id int64, category model.ProductCategory, unit model.ProductUnit, price string, minQty int64) model.Product {
	return model.Product{
		ID:          id,
		Name:        "Test Product",
		Category:    category,
		Unit:        unit,
		Price:       decimal.RequireFromString(price),
		MinQuantity: minQty,
		IsActive:    true,
	}
}

func TestEffectiveMinQuantity(t *testing.T) {
	tests := []struct {
		name     string
		product  model.Product
		expected int64
	}{
		{
			name:     "カップケーキは4個から",
			product:  activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1),
			expected: 4,
		},
		{
			name:     "マフィンも4個から",
			product:  activeProduct(2, model.CategoryMuffins, model.UnitPiece, "15.00", 2),
			expected: 4,
		},
		{
			name:     "箱売りクッキーは1箱から",
			product:  activeProduct(3, model.CategoryCookies, model.UnitBox, "120.00", 6),
			expected: 1,
		},
		{
			name:     "バラ売りクッキーは商品の下限",
			product:  activeProduct(4, model.CategoryCookies, model.UnitPiece, "10.00", 6),
			expected: 6,
		},
		{
			name:     "ケーキは商品の下限",
			product:  activeProduct(5, model.CategoryCakes, model.UnitKilogram, "500.00", 1),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveMinQuantity(tt.product))
		})
	}
}

func TestValidateLineItem_MinQuantityBoundary(t *testing.T) {
	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	cupcake.Name = "Chocolate Cupcake"

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)

	// 3個は下限未満で弾かれる
	_, err := ValidateLineItem(context.Background(), products, 1, 3)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "Minimum order for Chocolate Cupcake is 4 pc", he.Message)

	// 4個ちょうどは通る
	p, err := ValidateLineItem(context.Background(), products, 1, 4)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
}

func TestValidateLineItem_InactiveLooksLikeMissing(t *testing.T) {
	inactive := activeProduct(7, model.CategoryCakes, model.UnitKilogram, "500.00", 1)
	inactive.IsActive = false

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, int64(7)).Return(inactive, nil)
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	// 販売停止も不存在も同じ404・同じメッセージ
	for _, id := range []int64{7, 99} {
		_, err := ValidateLineItem(context.Background(), products, id, 1)
		he, ok := AsHTTPError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Status)
		assert.Equal(t, "Product not found", he.Message)
	}
}

func TestValidateLineItem_BadInputs(t *testing.T) {
	products := new(mockProductRepo)

	_, err := ValidateLineItem(context.Background(), products, 0, 1)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = ValidateLineItem(context.Background(), products, 1, 0)
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	// 商品検索まで進んでいないこと
	products.AssertNotCalled(t, "FindByID")
}

func TestValidateAndPrice_TotalFromCatalog(t *testing.T) {
	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)
	cake := activeProduct(2, model.CategoryCakes, model.UnitKilogram, "500.00", 1)

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(cake, nil)

	items := []RequestedItem{
		{ProductID: 1, Quantity: 4},
		{ProductID: 2, Quantity: 1},
	}

	priced, total, err := ValidateAndPrice(context.Background(), products, items, nil)
	assert.NoError(t, err)
	assert.Len(t, priced, 2)
	assert.True(t, total.Equal(decimal.RequireFromString("580.00")), "got %s", total)

	// 単価はカタログ値
	assert.True(t, priced[0].UnitPrice.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, priced[1].UnitPrice.Equal(decimal.RequireFromString("500.00")))
}

func TestValidateAndPrice_DeclaredTotalTolerance(t *testing.T) {
	cupcake := activeProduct(1, model.CategoryCupcakes, model.UnitPiece, "20.00", 1)

	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, int64(1)).Return(cupcake, nil)

	items := []RequestedItem{{ProductID: 1, Quantity: 4}}

	// 計算結果は80.00。差0.01までは許容
	ok := decimal.RequireFromString("80.01")
	_, total, err := ValidateAndPrice(context.Background(), products, items, &ok)
	assert.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("80.00")))

	// 0.02のズレは改ざん扱い
	bad := decimal.RequireFromString("80.02")
	_, _, err = ValidateAndPrice(context.Background(), products, items, &bad)
	he, okErr := AsHTTPError(err)
	assert.True(t, okErr)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "Total amount mismatch", he.Message)
}

func TestValidateAndPrice_ShortCircuitsOnFirstFailure(t *testing.T) {
	products := new(mockProductRepo)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{}, repo.ErrNotFound)

	items := []RequestedItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}

	_, _, err := ValidateAndPrice(context.Background(), products, items, nil)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	// 2件目には触っていない
	products.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestValidateAndPrice_EmptyOrder(t *testing.T) {
	products := new(mockProductRepo)

	_, _, err := ValidateAndPrice(context.Background(), products, nil, nil)
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "order has no items", he.Message)
}
