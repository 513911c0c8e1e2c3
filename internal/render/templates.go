package render

// layout wraps every message body. Content templates define "content".
const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="{{.L.T "lang"}}">
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="margin:0;padding:0;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;color:#1f2933">
<div style="max-width:600px;margin:0 auto;padding:24px;background:#ffffff">
<div style="font-size:20px;font-weight:bold;padding-bottom:16px;border-bottom:2px solid #1f2933">{{.Brand}}</div>
{{template "content" .}}
<p style="margin-top:32px">{{.L.T "signoff"}}<br>{{.L.T "team" .Brand}}</p>
<p style="font-size:12px;color:#6b7280">{{.L.T "questions"}}</p>
</div>
</body>
</html>{{end}}`

const orderTable = `{{define "order_table"}}
<p><strong>{{.L.T "order.number"}}:</strong> {{.D.Order.Reference}}</p>
{{if .D.Order.Items}}
<table style="width:100%;border-collapse:collapse">
<tr><th align="left">{{.L.T "order.item"}}</th><th align="right">{{.L.T "order.qty"}}</th><th align="right">{{.L.T "order.price"}}</th></tr>
{{range .D.Order.Items}}<tr><td>{{.Name}}{{if .Color}} ({{.Color}}{{if .Size}}, {{.Size}}{{end}}){{end}}</td><td align="right">{{.Quantity}}</td><td align="right">{{$.L.Money .LineTotal $.D.Order.Currency}}</td></tr>
{{end}}</table>
{{end}}
<table style="width:100%;margin-top:12px">
{{if .D.Order.Subtotal}}<tr><td>{{.L.T "order.subtotal"}}</td><td align="right">{{.L.Money .D.Order.Subtotal .D.Order.Currency}}</td></tr>{{end}}
{{if .D.Order.Shipping}}<tr><td>{{.L.T "order.shipping"}}</td><td align="right">{{.L.Money .D.Order.Shipping .D.Order.Currency}}</td></tr>{{end}}
{{if .D.Order.Discount}}<tr><td>{{.L.T "order.discount"}}</td><td align="right">-{{.L.Money .D.Order.Discount .D.Order.Currency}}</td></tr>{{end}}
{{if .D.Order.VAT}}<tr><td>{{.L.T "order.vat"}}</td><td align="right">{{.L.Money .D.Order.VAT .D.Order.Currency}}</td></tr>{{end}}
<tr><td><strong>{{.L.T "order.total"}}</strong></td><td align="right"><strong>{{.L.Money .D.Order.Total .D.Order.Currency}}</strong></td></tr>
</table>
{{with .D.Order.ShippingAddress}}
<p><strong>{{$.L.T "order.ship_to"}}</strong><br>
{{if .Name}}{{.Name}}<br>{{end}}{{if .Company}}{{.Company}}<br>{{end}}{{.Street}}<br>{{.PostalCode}} {{.City}}{{if .Country}}<br>{{.Country}}{{end}}</p>
{{end}}{{end}}`

var contents = map[string]string{
	"order_confirmation": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
{{if .D.Recipient.B2B}}<p>{{.L.T "order.thanks_b2b" .D.Recipient.Company}}</p>{{else}}<p>{{.L.T "order.thanks"}}</p>{{end}}
{{template "order_table" .}}
<p><a href="{{.Link "/orders/" .D.Order.Reference}}">{{.L.T "order.view"}}</a></p>
{{end}}`,

	"order_status_update": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "status.intro" .D.Order.Reference (.L.Status .D.NewStatus)}}</p>
{{if .D.TrackingNumber}}<p><strong>{{.L.T "status.tracking"}}:</strong> {{.D.TrackingNumber}}{{if .D.Carrier}} ({{.L.T "status.carrier"}}: {{.D.Carrier}}){{end}}</p>{{end}}
{{if .D.Note}}<p>{{.D.Note}}</p>{{end}}
{{template "order_table" .}}
<p><a href="{{.Link "/orders/" .D.Order.Reference}}">{{.L.T "order.view"}}</a></p>
{{end}}`,

	"order_notification_admin": `{{define "content"}}
<p>{{.L.T "admin.order"}}</p>
<p><strong>{{.L.T "admin.customer"}}:</strong> {{.D.Customer.Name}}{{if .D.Customer.Company}} ({{.D.Customer.Company}}){{end}} &lt;{{.D.Customer.Email}}&gt;<br>
<strong>{{.L.T "admin.class"}}:</strong> {{.D.AccountClass}}{{if .D.Source}}<br>
<strong>{{.L.T "admin.source"}}:</strong> {{.D.Source}}{{end}}</p>
{{template "order_table" .}}
<p><a href="{{.Link "/admin/orders/" .D.Order.Reference}}">{{.L.T "admin.open"}}</a></p>
{{end}}`,

	"login_credentials": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "creds.intro" .Brand}}</p>
<p><strong>{{.L.T "creds.email"}}:</strong> {{.D.Credentials.Email}}<br>
<strong>{{.L.T "creds.password"}}:</strong> <code>{{.D.Credentials.TemporaryPassword}}</code></p>
<p>{{.L.T "creds.change"}}</p>
<p><a href="{{.Link "/login"}}">{{.L.T "creds.login"}}</a></p>
{{end}}`,

	"password_reset": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "reset.intro"}}</p>
<p><a href="{{.Link "/reset-password?code=" .D.ResetCode}}">{{.L.T "reset.cta"}}</a></p>
<p style="font-size:12px;color:#6b7280">{{.L.T "reset.ignore"}}</p>
{{end}}`,

	"email_verification": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "verify.intro"}}</p>
<p><a href="{{.Link "/verify-email?code=" .D.VerificationCode}}">{{.L.T "verify.cta"}}</a></p>
{{end}}`,

	"account_activated": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "activated.intro"}}</p>
<p><a href="{{.Link "/login"}}">{{.L.T "activated.cta"}}</a></p>
{{end}}`,

	"affiliate_welcome": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "aff.intro"}}</p>
<p><strong>{{.L.T "aff.code"}}:</strong> {{.D.Affiliate.AffiliateCode}}<br>
{{if .D.Affiliate.CommissionRate}}<strong>{{.L.T "aff.commission"}}:</strong> {{.L.Percent .D.Affiliate.CommissionRate}}<br>{{end}}
{{if .D.Affiliate.CheckoutDiscount}}<strong>{{.L.T "aff.discount"}}:</strong> {{.L.Percent .D.Affiliate.CheckoutDiscount}}<br>{{end}}
<strong>{{.L.T "aff.link"}}:</strong> {{.Link "/?ref=" .D.Affiliate.AffiliateCode}}</p>
<p><strong>{{.L.T "creds.email"}}:</strong> {{.D.Credentials.Email}}<br>
<strong>{{.L.T "creds.password"}}:</strong> <code>{{.D.Credentials.TemporaryPassword}}</code></p>
<p>{{.L.T "creds.change"}}</p>
<p><a href="{{.Link "/affiliate-portal"}}">{{.L.T "aff.portal"}}</a></p>
{{end}}`,

	"affiliate_application_received": `{{define "content"}}
<p>{{.L.T "greeting" .D.Recipient.Name}}</p>
<p>{{.L.T "app.intro"}}</p>
<p><strong>{{.L.T "app.reference"}}:</strong> {{.D.ApplicationID}}</p>
{{end}}`,

	"affiliate_application_admin": `{{define "content"}}
<p>{{.L.T "app.admin"}}</p>
<p><strong>{{.L.T "app.reference"}}:</strong> {{.D.ApplicationID}}<br>
<strong>{{.L.T "app.name"}}:</strong> {{.D.Applicant.Name}}<br>
<strong>{{.L.T "app.email"}}:</strong> {{.D.Applicant.Email}}
{{if .D.Applicant.Phone}}<br><strong>{{.L.T "app.phone"}}:</strong> {{.D.Applicant.Phone}}{{end}}
{{if .D.Applicant.Website}}<br><strong>{{.L.T "app.website"}}:</strong> {{.D.Applicant.Website}}{{end}}
{{if .D.Applicant.Country}}<br><strong>{{.L.T "app.country"}}:</strong> {{.D.Applicant.Country}}{{end}}
{{if .D.Applicant.Channels}}<br><strong>{{.L.T "app.channels"}}:</strong> {{range $i, $c := .D.Applicant.Channels}}{{if $i}}, {{end}}{{$c}}{{end}}{{end}}
{{if .D.Applicant.Promotion}}<br><strong>{{.L.T "app.promotion"}}:</strong> {{.D.Applicant.Promotion}}{{end}}</p>
{{if .D.Applicant.Message}}<p><strong>{{.L.T "app.message"}}:</strong><br>{{.D.Applicant.Message}}</p>{{end}}
<p><a href="{{.Link "/admin/affiliates/applications/" .D.ApplicationID}}">{{.L.T "app.review"}}</a></p>
{{end}}`,
}
