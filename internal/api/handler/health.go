package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

var startTime = time.Now()

// SplitCounter reports how many splits are stored.
type SplitCounter interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	splits  SplitCounter
	dataDir string
	version string
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler. dataDir is the directory
// holding the database file; empty when storage is not on local disk.
func NewHealthHandler(splits SplitCounter, dataDir, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		splits:  splits,
		dataDir: dataDir,
		version: version,
		logger:  logger,
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version,omitempty"`
	Uptime    int64         `json:"uptime_seconds,omitempty"`
	Splits    *int          `json:"splits,omitempty"`
	Storage   *StorageStats `json:"storage,omitempty"`
}

// StorageStats describes the disk holding the database.
type StorageStats struct {
	Path       string  `json:"path"`
	TotalBytes int64   `json:"total_bytes"`
	FreeBytes  int64   `json:"free_bytes"`
	UsedPct    float64 `json:"used_pct"`
}

func (h *HealthHandler) storageStats() *StorageStats {
	if h.dataDir == "" {
		return nil
	}
	total, free, ok := getDiskStats(h.dataDir)
	if !ok {
		return nil
	}
	stats := &StorageStats{Path: h.dataDir, TotalBytes: total, FreeBytes: free}
	if total > 0 {
		stats.UsedPct = float64(total-free) / float64(total) * 100
	}
	return stats
}

// Live handles GET /health - liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Uptime:    int64(time.Since(startTime).Seconds()),
	})
}

// Ready handles GET /ready - readiness probe.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := h.splits.Count(ctx)
	if err != nil {
		h.logger.Warn("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "error",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Splits:    &count,
		Storage:   h.storageStats(),
	})
}
