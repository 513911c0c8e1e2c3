// Package transport delivers rendered messages over SMTP.
//
// Every operation reports its outcome as a SendResult; transport errors are
// captured and classified, never returned past this package.
package transport

import (
	"context"
	"errors"
)

// Message is a rendered email. Text is optional; when empty it is derived
// from HTML.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// SendOptions addresses a message. To, Cc and Bcc accept comma-separated lists.
type SendOptions struct {
	To      string
	From    string
	ReplyTo string
	Cc      string
	Bcc     string
}

// SendResult is the structured outcome of a transport call.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
	// Code is a DiagnoseSMTP classification. "invalid_address" means a
	// recipient failed validation and "sender_config" means the From or
	// Reply-To did; both are decided before any network I/O.
	Code      string
	Temporary bool
	// InFlight: se dejó de esperar un envío ya iniciado (ctx cancelado o
	// vencido). El mensaje puede llegar igual; reintentar puede duplicarlo.
	InFlight bool
}

// Transport is the delivery capability used by the dispatcher.
type Transport interface {
	Send(ctx context.Context, msg Message, opts SendOptions) SendResult
	SendToOperator(ctx context.Context, msg Message, opts SendOptions) SendResult
	TestConnectivity(ctx context.Context) SendResult
}

const (
	CodeInvalidAddress = "invalid_address"
	CodeSenderConfig   = "sender_config"
)

var (
	ErrInvalidAddress = errors.New("invalid email address")
	// ErrInvalidSender wraps address errors in From or Reply-To, which come
	// from configuration rather than from the caller.
	ErrInvalidSender = errors.New("invalid sender configuration")
	ErrEmptyMessage  = errors.New("message has no subject or body")
)

func failure(err error, code string) SendResult {
	return SendResult{Success: false, Error: err.Error(), Code: code}
}
