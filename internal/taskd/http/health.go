package http

import (
	"net/http"
	"time"

	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/pkg/httpx"
)

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Version  string `json:"version"`
	Database string `json:"database,omitempty"`
}

// LivezHandler is the liveness probe; it returns 200 whenever the process is
// serving requests.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler is the readiness probe; it additionally checks database
// connectivity.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:   "ok",
			Uptime:   time.Since(startTime).String(),
			Version:  version,
			Database: "ok",
		}
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			response.Status = "degraded"
			response.Database = "error: " + err.Error()
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, response)
	}
}
