package server

import (
	"encoding/json"
	"net/http"
	"time"
)

var startedAt = time.Now()

// handleHealthz responds to liveness probe requests.
func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleStatus reports process uptime and the current server time.
func handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"uptime_seconds": int(time.Since(startedAt).Seconds()),
		"time":           time.Now().UTC().Format(time.RFC3339),
	})
}
