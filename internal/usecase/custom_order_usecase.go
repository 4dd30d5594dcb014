package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/notification"
	repo "warmdelights/internal/repository"
)

// 特注依頼の業務ロジック。受付は未ログインでも可
type CustomOrderUsecase struct {
	customOrderRepo repo.CustomOrderRepository
	notifier        notification.Sender
}

func NewCustomOrderUsecase(customOrderRepo repo.CustomOrderRepository, notifier notification.Sender) *CustomOrderUsecase {
	return &CustomOrderUsecase{customOrderRepo: customOrderRepo, notifier: notifier}
}

type CreateCustomOrderInput struct {
	Name           string
	Email          string
	Phone          string
	Size           string
	Flavor         string
	DesignNotes    string
	ReferenceImage string
}

func (u *CustomOrderUsecase) CreateCustomOrder(ctx context.Context, in CreateCustomOrderInput) (model.CustomOrder, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "Name, email, and phone are required fields")
	}
	if len(in.DesignNotes) > 1000 {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "design_notes too long")
	}

	created, err := u.customOrderRepo.Create(ctx, model.CustomOrder{
		Name:           name,
		Email:          email,
		Phone:          phone,
		Size:           strings.TrimSpace(in.Size),
		Flavor:         strings.TrimSpace(in.Flavor),
		DesignNotes:    in.DesignNotes,
		ReferenceImage: in.ReferenceImage,
		Status:         model.CustomOrderStatusPending,
	})
	if err != nil {
		return model.CustomOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// メールはベストエフォート。落ちても受付自体は成功
	go func(co model.CustomOrder) {
		if err := u.notifier.SendCustomOrderConfirmation(context.Background(), co); err != nil {
			log.Errorf("custom order %d: confirmation email failed: %v", co.ID, err)
		}
	}(created)

	return created, nil
}

type CustomOrderListOutput struct {
	Orders []model.CustomOrder `json:"orders"`
	Page   int                 `json:"page"`
	Pages  int64               `json:"pages"`
	Total  int64               `json:"total"`
}

// 管理者の依頼一覧（新しい順・ページング）
func (u *CustomOrderUsecase) ListCustomOrders(ctx context.Context, page, limit int) (CustomOrderListOutput, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	orders, total, err := u.customOrderRepo.List(ctx, page, limit)
	if err != nil {
		return CustomOrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return CustomOrderListOutput{Orders: orders, Page: page, Pages: pages, Total: total}, nil
}

func (u *CustomOrderUsecase) GetCustomOrder(ctx context.Context, id int64) (model.CustomOrder, error) {
	if id <= 0 {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	co, err := u.customOrderRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.CustomOrder{}, NewHTTPError(http.StatusNotFound, "Custom order not found")
	}
	if err != nil {
		return model.CustomOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return co, nil
}

// 部分更新の入力。nilの項目は据え置き
type UpdateCustomOrderInput struct {
	Status      *model.CustomOrderStatus
	AdminNotes  *string
	QuoteAmount *decimal.Decimal
}

func (u *CustomOrderUsecase) UpdateCustomOrder(ctx context.Context, id int64, in UpdateCustomOrderInput) (model.CustomOrder, error) {
	if id <= 0 {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Status != nil && !model.ValidCustomOrderStatus(*in.Status) {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.QuoteAmount != nil && in.QuoteAmount.IsNegative() {
		return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "invalid quote_amount")
	}

	co, err := u.customOrderRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.CustomOrder{}, NewHTTPError(http.StatusNotFound, "Custom order not found")
	}
	if err != nil {
		return model.CustomOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Status != nil {
		co.Status = *in.Status
	}
	if in.AdminNotes != nil {
		if len(*in.AdminNotes) > 1000 {
			return model.CustomOrder{}, NewHTTPError(http.StatusBadRequest, "admin_notes too long")
		}
		co.AdminNotes = *in.AdminNotes
	}
	if in.QuoteAmount != nil {
		co.QuoteAmount = *in.QuoteAmount
	}

	if err := u.customOrderRepo.Update(ctx, co); err != nil {
		return model.CustomOrder{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return co, nil
}
