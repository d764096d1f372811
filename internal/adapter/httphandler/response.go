package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/adapter/upload"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
)

type envelope struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Count     *int      `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

var now = time.Now

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	body.Timestamp = now().UTC()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response body", "op", "httphandler.writeJSON", "err", err)
	}
}

// writeData wraps v in a success envelope. Slices also report their length.
func writeData(w http.ResponseWriter, status int, message string, v any) {
	body := envelope{Success: true, Message: message, Data: v}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice {
		n := rv.Len()
		body.Count = &n
	}
	writeJSON(w, status, body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: status < http.StatusBadRequest, Message: message})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, upload.ErrNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOTP):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotRegistered):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, retry.ErrRetriesExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status code. Server side failures are logged
// and their details hidden from the client.
func writeError(w http.ResponseWriter, op string, err error) {
	status := statusOf(err)
	log := slog.With("op", op, "status", status)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
		writeMessage(w, status, http.StatusText(status))
		return
	}
	log.Info("request rejected", "err", err)
	writeMessage(w, status, publicMessage(err))
}

// publicMessage strips op prefixes and keeps the sentinel with its detail.
// Storage constraint errors carry driver text, so only their sentinel is
// shown.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		ErrBadRequest,
		ErrUnauthorized,
		service.ErrInvalidArgument,
		service.ErrUserExists,
		service.ErrInvalidCredentials,
		service.ErrInvalidOTP,
		service.ErrForbidden,
		service.ErrNotRegistered,
		service.ErrEmptyCart,
		upload.ErrNotAllowed,
		domain.ErrNotFound,
	} {
		if errors.Is(err, sentinel) {
			return tailFrom(err.Error(), sentinel.Error())
		}
	}
	for _, sentinel := range []error{
		domain.ErrConflict,
		domain.ErrInvalidReference,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return http.StatusText(statusOf(err))
}

func tailFrom(s, from string) string {
	if i := strings.Index(s, from); i >= 0 {
		return s[i:]
	}
	return from
}
