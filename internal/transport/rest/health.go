package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// Checker is an extra readiness probe, e.g. the broker connection.
type Checker func(ctx context.Context) error

type HealthHandler struct {
	db       *sql.DB
	driver   string
	checkers map[string]Checker
}

func NewHealthHandler(db *sql.DB, driver string, checkers map[string]Checker) *HealthHandler {
	if checkers == nil {
		checkers = map[string]Checker{}
	}
	return &HealthHandler{db: db, driver: driver, checkers: checkers}
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler reports readiness of the database and any extra checkers.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:     HealthHealthy,
		Components: map[string]CheckEntry{},
	}

	dbEntry := runCheck(ctx, h.db.PingContext)
	dbEntry.Details = map[string]any{
		"driver":           h.driver,
		"open_connections": h.db.Stats().OpenConnections,
	}
	resp.Components["database"] = dbEntry

	for name, check := range h.checkers {
		resp.Components[name] = runCheck(ctx, check)
	}

	for _, entry := range resp.Components {
		if entry.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
		}
	}
	resp.CheckedAt = time.Now()

	statusCode := http.StatusOK
	if resp.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

func runCheck(ctx context.Context, check func(context.Context) error) CheckEntry {
	start := time.Now()
	err := check(ctx)
	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}
