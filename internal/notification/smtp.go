package notification

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"warmdelights/internal/domain/model"
)

// gomailベースのSMTP実装
type SMTPSender struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewSMTPSender(host string, port int, username, password, from, adminEmail string) *SMTPSender {
	return &SMTPSender{
		dialer:     gomail.NewDialer(host, port, username, password),
		from:       from,
		adminEmail: adminEmail,
	}
}

func (s *SMTPSender) SendOrderConfirmation(ctx context.Context, order model.Order, items []model.OrderItem, customer CustomerContact) error {
	var rows strings.Builder
	for _, it := range items {
		fmt.Fprintf(&rows,
			`<tr><td style="padding:6px 12px;">%s</td><td style="padding:6px 12px;">%d</td><td style="padding:6px 12px;">%s</td></tr>`,
			it.ProductNameSnapshot, it.Quantity, it.UnitPriceSnapshot.StringFixed(2))
	}

	body := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
  <h2 style="color:#FF7B54;">Warm Delights</h2>
  <h3>Order Confirmation - %s</h3>
  <p>Hello %s,</p>
  <p>Thank you for your order! Here is what we received:</p>
  <table style="border-collapse:collapse;">
    <tr><th style="padding:6px 12px;">Item</th><th style="padding:6px 12px;">Qty</th><th style="padding:6px 12px;">Price</th></tr>
    %s
  </table>
  <p><strong>Total:</strong> %s</p>
  <p><strong>Delivery date:</strong> %s</p>
  <p>We will keep you posted as your order is prepared.</p>
</div>`,
		order.OrderID, customer.Name, rows.String(),
		order.TotalAmount.StringFixed(2), order.DeliveryDate.Format("2006-01-02"))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", customer.Email)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation - %s", order.OrderID))
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

// 特注依頼は顧客向けと管理者向けの2通を送る
func (s *SMTPSender) SendCustomOrderConfirmation(ctx context.Context, co model.CustomOrder) error {
	customerBody := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
  <h2 style="color:#FF7B54;">Warm Delights</h2>
  <h3>Custom Order Request Received</h3>
  <p>Hello %s,</p>
  <p>Thank you for your custom order request! We're excited to bring your vision to life.</p>
  <p><strong>Size:</strong> %s<br/>
     <strong>Flavor:</strong> %s<br/>
     <strong>Design notes:</strong> %s</p>
  <p>We will review your request and get back to you with a quote within 24 hours.</p>
</div>`,
		co.Name, orDefault(co.Size), orDefault(co.Flavor), orDefault(co.DesignNotes))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", co.Email)
	m.SetHeader("Subject", "Custom Order Request Received")
	m.SetBody("text/html", customerBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}

	if s.adminEmail == "" {
		return nil
	}

	adminBody := fmt.Sprintf(`
<div style="font-family:Arial,sans-serif;padding:20px;">
  <h3>New custom order request #%d</h3>
  <p><strong>Name:</strong> %s<br/>
     <strong>Email:</strong> %s<br/>
     <strong>Phone:</strong> %s<br/>
     <strong>Size:</strong> %s<br/>
     <strong>Flavor:</strong> %s<br/>
     <strong>Design notes:</strong> %s</p>
</div>`,
		co.ID, co.Name, co.Email, co.Phone,
		orDefault(co.Size), orDefault(co.Flavor), orDefault(co.DesignNotes))

	am := gomail.NewMessage()
	am.SetHeader("From", s.from)
	am.SetHeader("To", s.adminEmail)
	am.SetHeader("Subject", fmt.Sprintf("New Custom Order Request from %s", co.Name))
	am.SetBody("text/html", adminBody)

	return s.dialer.DialAndSend(am)
}

func orDefault(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
