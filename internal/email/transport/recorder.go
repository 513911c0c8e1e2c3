package transport

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Sent es una entrega capturada por un Recorder.
type Sent struct {
	Message    Message
	Options    SendOptions
	Recipients []string
	ToOperator bool
	MessageID  string
}

// Recorder es un Transport en memoria para dry-run y testing. Valida
// direcciones igual que SMTPTransport pero nunca toca la red.
type Recorder struct {
	OperatorAddress string
	DefaultFrom     string

	mu       sync.Mutex
	sent     []Sent
	attempts int
	fail     error
	connErr  error
}

var _ Transport = (*Recorder)(nil)

func NewRecorder(operator, defaultFrom string) *Recorder {
	return &Recorder{OperatorAddress: operator, DefaultFrom: defaultFrom}
}

// FailWith hace que los próximos envíos fallen con err (nil lo limpia).
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}

// FailConnectivity hace fallar TestConnectivity con err (nil lo limpia).
func (r *Recorder) FailConnectivity(err error) {
	r.mu.Lock()
	r.connErr = err
	r.mu.Unlock()
}

func (r *Recorder) Send(ctx context.Context, msg Message, opts SendOptions) SendResult {
	return r.record(msg, opts, false)
}

func (r *Recorder) SendToOperator(ctx context.Context, msg Message, opts SendOptions) SendResult {
	opts.To = r.OperatorAddress
	return r.record(msg, opts, true)
}

func (r *Recorder) TestConnectivity(ctx context.Context) SendResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.connErr != nil {
		return failure(r.connErr, DiagnoseSMTP(r.connErr).Code)
	}
	return SendResult{Success: true}
}

// Sent devuelve una copia de lo entregado hasta ahora.
func (r *Recorder) Sent() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// Count es la cantidad de intentos que llegaron al recorder, incluidos
// los fallidos.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func (r *Recorder) record(msg Message, opts SendOptions, operator bool) SendResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts++

	if msg.Subject == "" || msg.HTML == "" {
		return failure(ErrEmptyMessage, "unknown")
	}
	env, err := checkEnvelope(opts, r.DefaultFrom)
	if err != nil {
		return failure(err, DiagnoseSMTP(err).Code)
	}
	if r.fail != nil {
		return failure(r.fail, DiagnoseSMTP(r.fail).Code)
	}
	if msg.Text == "" {
		msg.Text = HTMLToText(msg.HTML)
	}
	id := fmt.Sprintf("<%s@recorder.local>", uuid.NewString())
	r.sent = append(r.sent, Sent{
		Message:    msg,
		Options:    opts,
		Recipients: env.to,
		ToOperator: operator,
		MessageID:  id,
	})
	return SendResult{Success: true, MessageID: id}
}
