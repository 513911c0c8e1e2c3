package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/notify"
)

type fakeDispatcher struct {
	got        notify.EventContext
	outcome    notify.Outcome
	preview    notify.Preview
	previewErr error
	status     notify.SystemStatus
}

func (f *fakeDispatcher) Dispatch(_ context.Context, ec notify.EventContext) notify.Outcome {
	f.got = ec
	return f.outcome
}

func (f *fakeDispatcher) Preview(_ context.Context, ec notify.EventContext) (notify.Preview, error) {
	f.got = ec
	return f.preview, f.previewErr
}

func (f *fakeDispatcher) TestSystem(context.Context) notify.SystemStatus { return f.status }

func newRouter(d Dispatcher) http.Handler {
	r := chi.NewRouter()
	NewNotificationsHandler(d).Register(r)
	return r
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestStatusFor(t *testing.T) {
	cases := map[notify.ErrorKind]int{
		"":                                  http.StatusOK,
		notify.KindIdentityNotResolvable:    http.StatusUnprocessableEntity,
		notify.KindUnsupportedEventType:     http.StatusUnprocessableEntity,
		notify.KindMissingRequiredField:     http.StatusUnprocessableEntity,
		notify.KindInvalidAddress:           http.StatusUnprocessableEntity,
		notify.KindDeliveryFailed:           http.StatusBadGateway,
		notify.KindTemplateGenerationFailed: http.StatusInternalServerError,
		notify.KindUnknown:                  http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, StatusFor(kind), string(kind))
	}
}

func TestDispatch_Success(t *testing.T) {
	d := &fakeDispatcher{outcome: notify.Outcome{Success: true, MessageID: "<m@b8shield.com>", RecipientEmail: "jane@example.com"}}
	rr := post(newRouter(d), "/notifications",
		`{"eventType":"ORDER_CONFIRMATION","contactInfo":{"email":"jane@example.com"},"orderPayload":{"orderNumber":"B8S-1"}}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, notify.OrderConfirmation, d.got.EventType)
	require.NotNil(t, d.got.ContactInfo)
	assert.Equal(t, "jane@example.com", d.got.ContactInfo.Email)

	var out notify.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.True(t, out.Success)
	assert.Equal(t, "<m@b8shield.com>", out.MessageID)
}

func TestDispatch_FailureStatus(t *testing.T) {
	d := &fakeDispatcher{outcome: notify.Outcome{ErrorKind: notify.KindDeliveryFailed, ErrorMessage: "smtp down"}}
	rr := post(newRouter(d), "/notifications", `{"eventType":"ACCOUNT_ACTIVATED","explicitUserId":"u1"}`)

	require.Equal(t, http.StatusBadGateway, rr.Code)
	var out notify.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.False(t, out.Success)
	assert.Equal(t, notify.KindDeliveryFailed, out.ErrorKind)
	assert.Equal(t, "smtp down", out.ErrorMessage)
}

func TestDispatch_BadRequests(t *testing.T) {
	h := newRouter(&fakeDispatcher{})

	cases := []struct {
		name        string
		contentType string
		body        string
		status      int
	}{
		{"wrong content type", "text/plain", `{}`, http.StatusUnsupportedMediaType},
		{"empty body", "application/json", ``, http.StatusBadRequest},
		{"malformed", "application/json", `{"eventType":`, http.StatusBadRequest},
		{"wrong type", "application/json", `{"eventType":42}`, http.StatusBadRequest},
		{"trailing data", "application/json", `{} {}`, http.StatusBadRequest},
		{"too large", "application/json", `{"source":"` + strings.Repeat("a", maxJSONBody) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tc.status, rr.Code)
		})
	}
}

func TestPreview(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		d := &fakeDispatcher{preview: notify.Preview{Subject: "Orderbekräftelse B8S-1", Language: "sv-SE"}}
		rr := post(newRouter(d), "/notifications/preview", `{"eventType":"ORDER_CONFIRMATION"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		var pv notify.Preview
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pv))
		assert.Equal(t, "Orderbekräftelse B8S-1", pv.Subject)
	})

	t.Run("typed failure", func(t *testing.T) {
		d := &fakeDispatcher{previewErr: &notify.Error{Kind: notify.KindUnsupportedEventType, Msg: "unsupported event type BOGUS"}}
		rr := post(newRouter(d), "/notifications/preview", `{"eventType":"BOGUS"}`)

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var out notify.Outcome
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, notify.KindUnsupportedEventType, out.ErrorKind)
		assert.Equal(t, "unsupported event type BOGUS", out.ErrorMessage)
	})
}

func TestHealth(t *testing.T) {
	d := &fakeDispatcher{status: notify.SystemStatus{Success: true}}
	h := NewHealthHandler(d, "1.2.3")

	rr := httptest.NewRecorder()
	h.Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "1.2.3", rr.Header().Get("X-Service-Version"))

	rr = httptest.NewRecorder()
	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	d.status = notify.SystemStatus{Error: "dial tcp: connection refused"}
	rr = httptest.NewRecorder()
	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "connection refused")
}
