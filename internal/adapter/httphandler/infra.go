package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/niksmo/storefront/internal/adapter/metrics"
	"github.com/niksmo/storefront/internal/core/port"
)

const healthTimeout = 2 * time.Second

type health struct {
	DB string `json:"db"`
}

// Health reports whether the database answers a ping.
func Health(db port.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "Health"

		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			slog.Error("health check failed", "op", op, "err", err)
			writeJSON(w, http.StatusServiceUnavailable, envelope{
				Message: "database is unavailable",
				Data:    health{DB: "disconnected"},
			})
			return
		}
		writeData(w, http.StatusOK, "ok", health{DB: "connected"})
	}
}

// RegisterInfra mounts health, metrics and the uploaded images.
func RegisterInfra(mux *http.ServeMux, db port.HealthChecker, publicPrefix, uploadDir string) {
	mux.Handle("GET /healthz", Health(db))
	mux.Handle("GET /metrics", metrics.Handler())

	prefix := "/" + strings.Trim(publicPrefix, "/") + "/"
	mux.Handle("GET "+prefix,
		http.StripPrefix(prefix, http.FileServer(http.Dir(uploadDir))))
}
