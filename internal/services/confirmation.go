package services

import (
	"bytes"
	"fmt"
	"html/template"
	"shop-service/internal/domain"

	"github.com/shopspring/decimal"
)

// MailSettings addresses outgoing confirmation emails.
type MailSettings struct {
	From string
	Cc   string
}

type confirmationLine struct {
	Name  string
	Qty   int64
	Price string
}

type confirmationView struct {
	OrderID               uint64
	Lines                 []confirmationLine
	Delivery              string
	Discount              string
	Total                 string
	DeliveryAddress       *domain.Address
	BillingAddress        *domain.Address
	EstimatedDeliveryDate string
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
<title>Order confirmation</title>
</head>
<body style="font-family: Open Sans, Helvetica, Arial, sans-serif;">
<h2>Thank you for your order!</h2>
<p>Order #{{.OrderID}}</p>
<table cellspacing="0" cellpadding="0" border="0" width="100%">
{{range .Lines}}<tr><td width="75%">{{.Name}} (x{{.Qty}})</td><td width="25%">{{.Price}}</td></tr>
{{end}}<tr><td>Delivery</td><td>{{.Delivery}}</td></tr>
{{if .Discount}}<tr><td>Discount</td><td>{{.Discount}}</td></tr>
{{end}}<tr><td><strong>TOTAL</strong></td><td><strong>{{.Total}}</strong></td></tr>
</table>
{{with .DeliveryAddress}}<h3>Delivery Address</h3>
<p>{{.House}} {{.Street}}<br>{{.City}}<br>{{.County}}<br>{{.Postcode}}</p>
{{end}}{{with .BillingAddress}}<h3>Billing Address</h3>
<p>{{.House}} {{.Street}}<br>{{.City}}<br>{{.County}}<br>{{.Postcode}}</p>
{{end}}{{if .EstimatedDeliveryDate}}<p><strong>Estimated Delivery Date</strong></p>
<p>{{.EstimatedDeliveryDate}}</p>
{{end}}</body>
</html>
`))

func pounds(d decimal.Decimal) string {
	return "£" + d.StringFixed(2)
}

// renderConfirmation builds the email for a placed order. Only the lines
// that were actually sold belong in receipt.Lines.
func renderConfirmation(settings MailSettings, to string, receipt *domain.Receipt) (*domain.EmailMessage, error) {
	view := confirmationView{
		OrderID:               receipt.Order.ID,
		Delivery:              "FREE",
		DeliveryAddress:       receipt.DeliveryAddress,
		BillingAddress:        receipt.BillingAddress,
		EstimatedDeliveryDate: receipt.EstimatedDeliveryDate,
	}
	for _, l := range receipt.Lines {
		view.Lines = append(view.Lines, confirmationLine{Name: l.Name, Qty: l.Qty, Price: pounds(l.UnitPrice())})
	}
	if m := receipt.DeliveryMethod; m != nil && !m.DeliveryPrice.IsZero() {
		view.Delivery = pounds(m.DeliveryPrice)
	}
	if receipt.Discount != nil {
		view.Discount = fmt.Sprintf("%d%%", receipt.Discount.Value)
	}
	if receipt.Payment != nil {
		view.Total = pounds(receipt.Payment.Total)
	} else {
		view.Total = pounds(decimal.Zero)
	}

	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, view); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	return &domain.EmailMessage{
		From:    settings.From,
		To:      to,
		Cc:      settings.Cc,
		Subject: fmt.Sprintf("Order confirmation #%d", receipt.Order.ID),
		HTML:    body.String(),
	}, nil
}
