package notification

import (
	"context"

	"warmdelights/internal/domain/model"
)

type CustomerContact struct {
	Name  string
	Email string
	Phone string
}

// 確認メールの送信窓口。呼び出し側はusecaseにDIして使う
// 送信失敗は呼び出し側でログするだけで、注文処理は失敗させない
type Sender interface {
	SendOrderConfirmation(ctx context.Context, order model.Order, items []model.OrderItem, customer CustomerContact) error
	SendCustomOrderConfirmation(ctx context.Context, co model.CustomOrder) error
}

// SMTP未設定のとき用。何もしない
type NopSender struct{}

func (NopSender) SendOrderConfirmation(ctx context.Context, order model.Order, items []model.OrderItem, customer CustomerContact) error {
	return nil
}

func (NopSender) SendCustomOrderConfirmation(ctx context.Context, co model.CustomOrder) error {
	return nil
}
