package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/middlewares"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/notify"
)

type stubDispatcher struct{ calls int }

func (s *stubDispatcher) Dispatch(context.Context, notify.EventContext) notify.Outcome {
	s.calls++
	return notify.Outcome{Success: true, MessageID: "<id@b8shield.com>"}
}

func (s *stubDispatcher) Preview(context.Context, notify.EventContext) (notify.Preview, error) {
	return notify.Preview{Subject: "s"}, nil
}

func (s *stubDispatcher) TestSystem(context.Context) notify.SystemStatus {
	return notify.SystemStatus{Success: true}
}

func do(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_PublicRoutes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) })
	h := New(Deps{Dispatcher: &stubDispatcher{}, Metrics: metrics, Auth: mw.AuthConfig{Secret: "s3cret"}})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rr := do(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	h := New(Deps{Dispatcher: &stubDispatcher{}})

	rr := do(h, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), `"code":"NOT_FOUND"`)

	rr = do(h, http.MethodGet, "/v1/notifications", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_V1RequiresBearerWhenConfigured(t *testing.T) {
	d := &stubDispatcher{}
	h := New(Deps{Dispatcher: d, Auth: mw.AuthConfig{Secret: "s3cret", Audience: "notify"}})
	body := `{"eventType":"ACCOUNT_ACTIVATED","explicitUserId":"r1"}`

	rr := do(h, http.MethodPost, "/v1/notifications", body, "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Zero(t, d.calls)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin-portal",
		Audience:  jwt.ClaimStrings{"notify"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	rr = do(h, http.MethodPost, "/v1/notifications", body, tok)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, d.calls)
	assert.Contains(t, rr.Body.String(), "id@b8shield.com")
}

func TestRouter_OpenWithoutSecret(t *testing.T) {
	h := New(Deps{Dispatcher: &stubDispatcher{}})
	rr := do(h, http.MethodPost, "/v1/notifications/preview", `{"eventType":"ACCOUNT_ACTIVATED"}`, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}
