// Package handlers implements the notification HTTP endpoints.
package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"

	"github.com/MixxMasterMike123/b8s-reseller-app-sub004/internal/http/errors"
)

const maxJSONBody = 1 << 20 // 1MB

// readJSON decodes a single JSON document into dst. Unknown fields are
// ignored: order payloads carry more than the templates read.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) *errors.AppError {
	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.HasPrefix(ct, "application/json") {
		return errors.ErrUnsupportedMediaType
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.ErrBodyTooLarge
		case stderrors.Is(err, io.EOF):
			return errors.ErrInvalidJSON.WithDetail("empty body")
		default:
			return errors.ErrInvalidJSON.WithDetail(err.Error())
		}
	}
	if dec.More() {
		return errors.ErrInvalidJSON.WithDetail("trailing data after JSON document")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
