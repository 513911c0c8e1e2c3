package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/notify"
	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/observability/logger"
)

// Dispatcher is the part of *notify.Dispatcher the HTTP layer needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, ec notify.EventContext) notify.Outcome
	Preview(ctx context.Context, ec notify.EventContext) (notify.Preview, error)
	TestSystem(ctx context.Context) notify.SystemStatus
}

// NotificationsHandler serves /v1/notifications.
type NotificationsHandler struct {
	d Dispatcher
}

func NewNotificationsHandler(d Dispatcher) *NotificationsHandler {
	return &NotificationsHandler{d: d}
}

// Register mounts the routes on r (already scoped under /v1).
func (h *NotificationsHandler) Register(r chi.Router) {
	r.Post("/notifications", h.dispatch)
	r.Post("/notifications/preview", h.preview)
}

// StatusFor maps a failure kind to the HTTP status returned to callers.
func StatusFor(kind notify.ErrorKind) int {
	switch kind {
	case "":
		return http.StatusOK
	case notify.KindIdentityNotResolvable,
		notify.KindUnsupportedEventType,
		notify.KindMissingRequiredField,
		notify.KindInvalidAddress:
		return http.StatusUnprocessableEntity
	case notify.KindDeliveryFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *NotificationsHandler) dispatch(w http.ResponseWriter, r *http.Request) {
	var ec notify.EventContext
	if appErr := readJSON(w, r, &ec); appErr != nil {
		errors.WriteError(w, appErr)
		return
	}

	out := h.d.Dispatch(r.Context(), ec)
	if !out.Success {
		logger.From(r.Context()).Info("notification not delivered",
			logger.EventType(string(ec.EventType)),
			logger.ErrorKind(string(out.ErrorKind)),
		)
		writeJSON(w, StatusFor(out.ErrorKind), out)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *NotificationsHandler) preview(w http.ResponseWriter, r *http.Request) {
	var ec notify.EventContext
	if appErr := readJSON(w, r, &ec); appErr != nil {
		errors.WriteError(w, appErr)
		return
	}

	pv, err := h.d.Preview(r.Context(), ec)
	if err != nil {
		kind := notify.KindOf(err)
		writeJSON(w, StatusFor(kind), notify.Outcome{ErrorKind: kind, ErrorMessage: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, pv)
}
