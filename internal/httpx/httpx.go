// Package httpx holds the JSON helpers shared by every handler.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/logger"
	"go.uber.org/zap"
)

func Respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func RespondError(w http.ResponseWriter, status int, msg string) {
	Respond(w, status, map[string]string{"error": msg})
}

// Error maps err to a status by its apperr kind. Storage and unknown errors
// are logged and reported without detail.
func Error(w http.ResponseWriter, log logger.ZapLogger, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrStaleBackup):
		RespondError(w, http.StatusConflict, err.Error())
	default:
		log.Error("request failed", zap.Error(err))
		RespondError(w, http.StatusInternalServerError, "internal error")
	}
}

// Decode reads a JSON body into v, reporting malformed input as a
// validation error.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation("decode request", "invalid JSON body: %v", err)
	}
	return nil
}

// QueryInt returns def when the parameter is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation("query", "%s must be an integer", name)
	}
	return v, nil
}

// QueryIntPtr returns nil when the parameter is absent.
func QueryIntPtr(r *http.Request, name string) (*int, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	v, err := QueryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
