package errors

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError escribe err como JSON con su status HTTP.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Detail:    appErr.Detail,
		RequestID: w.Header().Get("X-Request-ID"),
	})
}
