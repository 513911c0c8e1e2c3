package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	mail "github.com/go-mail/mail"
	"github.com/google/uuid"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// SMTPConfig agrupa los parámetros de conexión. Password va en claro (ya descifrado).
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	TLSMode            string // "auto" | "starttls" | "ssl" | "none"
	InsecureSkipVerify bool
	Timeout            time.Duration

	DefaultFrom     string
	OperatorAddress string
}

// dialer es el subconjunto de *mail.Dialer que usamos.
type dialer interface {
	Dial() (mail.SendCloser, error)
	DialAndSend(m ...*mail.Message) error
}

var (
	errCanceled = errors.New("smtp: canceled")
	errInFlight = errors.New("send may still complete")
)

// SMTPTransport implementa Transport usando go-mail.
type SMTPTransport struct {
	cfg       SMTPConfig
	newDialer func() dialer
	now       func() time.Time
}

var _ Transport = (*SMTPTransport)(nil)

func NewSMTP(cfg SMTPConfig) *SMTPTransport {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.TLSMode == "" {
		cfg.TLSMode = "auto"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	t := &SMTPTransport{cfg: cfg, now: time.Now}
	t.newDialer = func() dialer { return t.buildDialer() }
	return t
}

func (t *SMTPTransport) buildDialer() *mail.Dialer {
	d := mail.NewDialer(t.cfg.Host, t.cfg.Port, t.cfg.Username, t.cfg.Password)
	d.Timeout = t.cfg.Timeout
	d.TLSConfig = &tls.Config{
		ServerName:         t.cfg.Host,
		InsecureSkipVerify: t.cfg.InsecureSkipVerify, // sólo dev
	}
	switch t.cfg.TLSMode {
	case "ssl":
		d.SSL = true
	case "starttls":
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case "none":
		d.StartTLSPolicy = mail.NoStartTLS
	default:
		d.StartTLSPolicy = mail.OpportunisticStartTLS
	}
	return d
}

// Send valida direcciones, arma un multipart/alternative (txt + html) y lo
// entrega dentro de ctx y del timeout configurado.
func (t *SMTPTransport) Send(ctx context.Context, msg Message, opts SendOptions) SendResult {
	log := logger.From(ctx).With(
		logger.Layer("smtp"),
		logger.Op("Send"),
		logger.String("host", t.cfg.Host),
		logger.Int("port", t.cfg.Port),
		logger.Recipient(opts.To),
	)

	m, id, err := t.build(msg, opts)
	if err != nil {
		log.Warn("message rejected before send", logger.Err(err))
		return failure(err, DiagnoseSMTP(err).Code)
	}

	if err := t.run(ctx, func(d dialer) error { return d.DialAndSend(m) }); err != nil {
		diag := DiagnoseSMTP(err)
		log.Error("smtp send failed", logger.Err(err), logger.String("diag", diag.Code))
		r := failure(err, diag.Code)
		r.Temporary = diag.Temporary
		if errors.Is(err, errInFlight) {
			r.InFlight, r.Temporary = true, false
		}
		return r
	}

	log.Info("email sent", logger.MessageID(id))
	return SendResult{Success: true, MessageID: id}
}

// SendToOperator ignora opts.To y entrega al buzón del operador.
func (t *SMTPTransport) SendToOperator(ctx context.Context, msg Message, opts SendOptions) SendResult {
	opts.To = t.cfg.OperatorAddress
	return t.Send(ctx, msg, opts)
}

// TestConnectivity conecta y autentica sin enviar nada.
func (t *SMTPTransport) TestConnectivity(ctx context.Context) SendResult {
	err := t.run(ctx, func(d dialer) error {
		sc, err := d.Dial()
		if err != nil {
			return err
		}
		return sc.Close()
	})
	if err != nil {
		diag := DiagnoseSMTP(err)
		logger.From(ctx).Warn("smtp connectivity check failed",
			logger.Layer("smtp"), logger.Err(err), logger.String("diag", diag.Code))
		r := failure(err, diag.Code)
		r.Temporary = diag.Temporary
		return r
	}
	return SendResult{Success: true}
}

// run ejecuta fn con un dialer nuevo y deja de esperar cuando ctx termina.
// go-mail no soporta context: la llamada sigue en background hasta que
// vence su propio timeout, y el error lleva errInFlight.
func (t *SMTPTransport) run(ctx context.Context, fn func(dialer) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", errCanceled, err)
	}
	done := make(chan error, 1)
	go func() { done <- fn(t.newDialer()) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp: %w", err)
		}
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("smtp: %w (%w)", ctx.Err(), errInFlight)
		}
		return fmt.Errorf("%w: %v (%w)", errCanceled, ctx.Err(), errInFlight)
	}
}

func (t *SMTPTransport) build(msg Message, opts SendOptions) (*mail.Message, string, error) {
	if msg.Subject == "" || msg.HTML == "" {
		return nil, "", ErrEmptyMessage
	}
	env, err := checkEnvelope(opts, t.cfg.DefaultFrom)
	if err != nil {
		return nil, "", err
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(env.fromAddr))

	m := mail.NewMessage()
	m.SetHeader("From", env.from)
	m.SetHeader("To", env.to...)
	if len(env.cc) > 0 {
		m.SetHeader("Cc", env.cc...)
	}
	if len(env.bcc) > 0 {
		m.SetHeader("Bcc", env.bcc...)
	}
	if len(env.replyTo) > 0 {
		m.SetHeader("Reply-To", env.replyTo...)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)
	m.SetDateHeader("Date", t.now())

	text := msg.Text
	if text == "" {
		text = HTMLToText(msg.HTML)
	}
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", msg.HTML)

	return m, id, nil
}
