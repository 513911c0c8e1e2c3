package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressList(t *testing.T) {
	got, err := ParseAddressList(" a@b.com ,Jane Doe <jane@example.se>,, ")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@b.com", "jane@example.se"}, got)

	for _, bad := range []string{"", " , ", "plain", "@b.com", "a@", "a@b", "a@.com", "a@b.com; c@d.com"} {
		_, err := ParseAddressList(bad)
		assert.ErrorIs(t, err, ErrInvalidAddress, bad)
	}
}

func TestHTMLToText(t *testing.T) {
	in := `<html><head><title>x</title><style>p{color:red}</style></head>
<body><h1>Order #42</h1><p>Thanks &amp; welcome,<br>Anna</p>
<ul><li>Item A</li><li>Item B</li></ul>
<p><a href="https://shop.b8shield.com/orders/42">View order</a></p>
<script>alert(1)</script></body></html>`

	out := HTMLToText(in)
	assert.Contains(t, out, "Order #42")
	assert.Contains(t, out, "Thanks & welcome,\nAnna")
	assert.Contains(t, out, "- Item A\n- Item B")
	assert.Contains(t, out, "View order (https://shop.b8shield.com/orders/42)")
	assert.NotContains(t, out, "color:red")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "<")
	assert.NotContains(t, out, "\n\n\n")
}

func TestHTMLToText_PlainInput(t *testing.T) {
	assert.Equal(t, "just text", HTMLToText("  just   text "))
	assert.Equal(t, "", HTMLToText(""))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "read: i/o wait" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestDiagnoseSMTP(t *testing.T) {
	cases := []struct {
		err  error
		code string
		temp bool
	}{
		{nil, "unknown", false},
		{fmt.Errorf("wrap: %w", timeoutErr{}), "timeout", true},
		{errors.New("dial tcp: lookup smtp.x: no such host"), "dial", true},
		{errors.New("x509: certificate signed by unknown authority"), "tls", false},
		{errors.New("auth failed"), "auth", false},
		{errors.New("421 4.7.0 Try again later"), "rate_limited", true},
		{errors.New("550 5.1.1 user unknown"), "invalid_recipient", false},
		{errors.New("554 5.7.1 message rejected due to DMARC"), "rejected", false},
		{fmt.Errorf("%w: x", ErrInvalidAddress), CodeInvalidAddress, false},
		{fmt.Errorf("%w: from: %w", ErrInvalidSender, ErrInvalidAddress), CodeSenderConfig, false},
		{errors.New("something odd"), "unknown", false},
	}
	for _, c := range cases {
		d := DiagnoseSMTP(c.err)
		assert.Equal(t, c.code, d.Code, "%v", c.err)
		assert.Equal(t, c.temp, d.Temporary, "%v", c.err)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder("ops@b8shield.com", "info@b8shield.com")
	ctx := context.Background()

	res := r.Send(ctx, Message{Subject: "S", HTML: "<p>Hi</p>"}, SendOptions{To: "a@b.com"})
	require.True(t, res.Success)
	res = r.SendToOperator(ctx, Message{Subject: "S", HTML: "<p>Ops</p>"}, SendOptions{To: "ignored@b.com"})
	require.True(t, res.Success)

	sent := r.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Hi", sent[0].Message.Text)
	assert.Equal(t, []string{"ops@b8shield.com"}, sent[1].Recipients)
	assert.True(t, sent[1].ToOperator)

	res = r.Send(ctx, Message{Subject: "S", HTML: "<p>x</p>"}, SendOptions{To: "bad"})
	assert.Equal(t, CodeInvalidAddress, res.Code)

	r.FailWith(errors.New("auth failed"))
	res = r.Send(ctx, Message{Subject: "S", HTML: "<p>x</p>"}, SendOptions{To: "a@b.com"})
	assert.False(t, res.Success)
	assert.Equal(t, "auth failed", res.Error)
	assert.Equal(t, 4, r.Count())
	assert.Len(t, r.Sent(), 2)

	assert.True(t, r.TestConnectivity(ctx).Success)
	r.FailConnectivity(errors.New("connection refused"))
	assert.False(t, r.TestConnectivity(ctx).Success)
}

func TestRecorder_ValidatesLikeSMTP(t *testing.T) {
	ctx := context.Background()
	msg := Message{Subject: "S", HTML: "<p>x</p>"}

	cases := []struct {
		name string
		rec  *Recorder
		opts SendOptions
		code string
	}{
		{"bad reply-to", NewRecorder("", "info@b8shield.com"), SendOptions{To: "a@b.com", ReplyTo: "support-at-b8shield"}, CodeSenderConfig},
		{"bad from", NewRecorder("", "info@b8shield.com"), SendOptions{To: "a@b.com", From: "info@"}, CodeSenderConfig},
		{"no from at all", NewRecorder("", ""), SendOptions{To: "a@b.com"}, CodeSenderConfig},
		{"bad cc", NewRecorder("", "info@b8shield.com"), SendOptions{To: "a@b.com", Cc: "nope"}, CodeInvalidAddress},
		{"bad bcc", NewRecorder("", "info@b8shield.com"), SendOptions{To: "a@b.com", Bcc: "x@localhost"}, CodeInvalidAddress},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := c.rec.Send(ctx, msg, c.opts)
			assert.False(t, res.Success)
			assert.Equal(t, c.code, res.Code)
			assert.Empty(t, c.rec.Sent())
		})
	}
}
