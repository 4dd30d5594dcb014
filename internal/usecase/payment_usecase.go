package usecase

import (
	"context"
	"net/http"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"

	"warmdelights/internal/domain/model"
	"warmdelights/internal/payment"
	repo "warmdelights/internal/repository"
)

// 決済はゲートウェイへの素通し。台帳やリトライは持たない
type PaymentUsecase struct {
	gateway   payment.Gateway
	orderRepo repo.OrderRepository
}

func NewPaymentUsecase(gateway payment.Gateway, orderRepo repo.OrderRepository) *PaymentUsecase {
	return &PaymentUsecase{gateway: gateway, orderRepo: orderRepo}
}

type CreateIntentInput struct {
	Amount   decimal.Decimal
	Currency string
	OrderRef string
}

func (u *PaymentUsecase) CreateIntent(ctx context.Context, userID int64, in CreateIntentInput) (payment.IntentOutput, error) {
	if userID <= 0 {
		return payment.IntentOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !in.Amount.IsPositive() {
		return payment.IntentOutput{}, NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	metadata := map[string]string{}
	if in.OrderRef != "" {
		metadata["order_ref"] = in.OrderRef
	}

	out, err := u.gateway.CreateIntent(ctx, in.Amount, in.Currency, metadata)
	if err != nil {
		log.Errorf("payment intent creation failed: %v", err)
		return payment.IntentOutput{}, NewHTTPError(http.StatusBadGateway, "Payment processing failed")
	}
	return out, nil
}

// Webhook処理。署名検証に通った分だけ注文の支払状態へ反映する
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := u.gateway.ParseWebhook(payload, sigHeader)
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, "Invalid webhook signature")
	}

	switch event.Type {
	case "payment_intent.succeeded":
		if err := u.orderRepo.UpdatePaymentStatusByTransactionID(ctx, event.PaymentIntentID, model.PaymentStatusCompleted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	case "payment_intent.payment_failed":
		if err := u.orderRepo.UpdatePaymentStatusByTransactionID(ctx, event.PaymentIntentID, model.PaymentStatusFailed); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	default:
		log.Infof("unhandled webhook event type: %s", event.Type)
	}

	return nil
}
