// Package notify is the notification core: it resolves who an event is for,
// checks the request against the event catalog, renders the message and
// hands it to the transport.
//
// Dispatch never panics and never returns a Go error; every failure is an
// Outcome with Success=false and an ErrorKind.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/email/transport"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/metrics"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/render"
)

type Options struct {
	// DefaultLanguage ends the language fallback chain (sv-SE when empty).
	DefaultLanguage string
	// ReplyTo is set on every outgoing message when non-empty.
	ReplyTo string
	Policy  *SenderPolicy
}

type Dispatcher struct {
	resolver    *Resolver
	renderer    *render.Renderer
	transport   transport.Transport
	policy      *SenderPolicy
	defaultLang string
	replyTo     string
	now         func() time.Time
}

func New(resolver *Resolver, renderer *render.Renderer, tr transport.Transport, opts Options) *Dispatcher {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = DefaultLanguage
	}
	if opts.Policy == nil {
		opts.Policy = NewSenderPolicy("", "", nil)
	}
	return &Dispatcher{
		resolver:    resolver,
		renderer:    renderer,
		transport:   tr,
		policy:      opts.Policy,
		defaultLang: opts.DefaultLanguage,
		replyTo:     opts.ReplyTo,
		now:         time.Now,
	}
}

// prepared is a request that passed every stage up to sending.
type prepared struct {
	rcpt     ResolvedRecipient
	lang     string
	msg      transport.Message
	from     string
	operator bool
}

// prepare runs validation, resolution and rendering. The event type is
// checked before identity so an unsupported type never costs a lookup.
func (d *Dispatcher) prepare(ctx context.Context, ec EventContext, log *zap.Logger) (*prepared, error) {
	e, ok := catalog[EventType(strings.TrimSpace(string(ec.EventType)))]
	if !ok {
		return nil, errUnsupported(ec.EventType)
	}
	ec.EventType = EventType(strings.TrimSpace(string(ec.EventType)))

	rcpt, err := d.resolver.Resolve(ctx, ec)
	if err != nil {
		return nil, err
	}
	metrics.RecordIdentity(string(rcpt.AccountClass))
	log.Debug("identity resolved", logger.AccountClass(string(rcpt.AccountClass)), logger.Recipient(rcpt.Email))

	lang := EffectiveLanguage(ec.RequestedLanguage, rcpt.PreferredLanguage, d.defaultLang)

	if field, missing := missingField(e, ec); missing {
		return nil, errMissing(ec.EventType, field)
	}

	msg, err := e.render(d.renderer, assembly{ec: ec, rcpt: rcpt, lang: lang})
	if err != nil {
		return nil, errTemplate(ec.EventType, err)
	}
	if msg.Subject == "" || msg.HTML == "" {
		return nil, errTemplate(ec.EventType, fmt.Errorf("empty subject or body"))
	}

	return &prepared{
		rcpt:     rcpt,
		lang:     lang,
		msg:      msg,
		from:     d.policy.Sender(ec.EventType, rcpt.AccountClass),
		operator: ec.ToOperatorMailbox || e.operator,
	}, nil
}

// Dispatch sends one notification and reports the outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, ec EventContext) (out Outcome) {
	start := d.now()
	log := logger.From(ctx).With(
		logger.Component("dispatcher"),
		logger.EventType(string(ec.EventType)),
		logger.Source(ec.Source),
	)
	ctx = logger.ToContext(ctx, log)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("dispatch panicked", zap.Any("panic", rec), zap.Stack("stack"))
			out = failed(errPanic(rec))
		}
		result := "success"
		if !out.Success {
			result = string(out.ErrorKind)
		}
		metrics.RecordDispatch(eventLabel(ec.EventType), result, d.now().Sub(start))
	}()

	p, err := d.prepare(ctx, ec, log)
	if err != nil {
		log.Warn("dispatch rejected", logger.ErrorKind(string(KindOf(err))), logger.Err(err))
		return failed(err)
	}

	opts := transport.SendOptions{
		To:      p.rcpt.Email,
		From:    p.from,
		ReplyTo: d.replyTo,
	}
	var (
		res   transport.SendResult
		route = "recipient"
	)
	if p.operator {
		route = "operator"
		res = d.transport.SendToOperator(ctx, p.msg, opts)
	} else {
		res = d.transport.Send(ctx, p.msg, opts)
	}

	if !res.Success {
		metrics.RecordSend(route, resultLabel(res.Code))
		kind := KindDeliveryFailed
		if res.Code == transport.CodeInvalidAddress {
			kind = KindInvalidAddress
		}
		err := errDelivery(kind, ec.EventType, res.Error)
		log.Error("delivery failed", logger.Route(route), logger.ErrorKind(string(kind)), logger.String("diag", res.Code), logger.Bool("in_flight", res.InFlight), logger.Err(err))
		return failed(err)
	}
	metrics.RecordSend(route, "ok")

	log.Info("notification sent",
		logger.Route(route),
		logger.MessageID(res.MessageID),
		logger.Language(p.lang),
		logger.AccountClass(string(p.rcpt.AccountClass)),
		logger.Duration(d.now().Sub(start)),
	)
	return Outcome{
		Success:        true,
		MessageID:      res.MessageID,
		RecipientEmail: p.rcpt.Email,
		AccountClass:   p.rcpt.AccountClass,
		Language:       p.lang,
		Subject:        p.msg.Subject,
	}
}

// Preview runs every stage except delivery.
func (d *Dispatcher) Preview(ctx context.Context, ec EventContext) (pv Preview, err error) {
	log := logger.From(ctx).With(logger.Component("dispatcher"), logger.Op("Preview"), logger.EventType(string(ec.EventType)))
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("preview panicked", zap.Any("panic", rec))
			err = errPanic(rec)
		}
	}()

	p, err := d.prepare(logger.ToContext(ctx, log), ec, log)
	if err != nil {
		return Preview{}, err
	}
	to := p.rcpt.Email
	if p.operator {
		to = ""
	}
	return Preview{
		Recipient: p.rcpt,
		From:      p.from,
		To:        to,
		Operator:  p.operator,
		Language:  p.lang,
		Subject:   p.msg.Subject,
		HTML:      p.msg.HTML,
		Text:      p.msg.Text,
	}, nil
}

// TestSystem checks that the transport can connect.
func (d *Dispatcher) TestSystem(ctx context.Context) SystemStatus {
	res := d.transport.TestConnectivity(ctx)
	if !res.Success {
		logger.From(ctx).Warn("system test failed", logger.Component("dispatcher"), logger.String("diag", res.Code), logger.String("error", res.Error))
		return SystemStatus{Success: false, Error: res.Error}
	}
	return SystemStatus{Success: true}
}

func failed(err error) Outcome {
	return Outcome{Success: false, ErrorKind: KindOf(err), ErrorMessage: err.Error()}
}

// eventLabel bounds metric cardinality to the supported set.
func eventLabel(et EventType) string {
	if _, ok := catalog[et]; ok {
		return string(et)
	}
	return "unsupported"
}

func resultLabel(code string) string {
	if code == "" {
		return "unknown"
	}
	return code
}
