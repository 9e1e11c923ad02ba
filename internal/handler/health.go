// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/amoodyplace/moodyplace-go/internal/version"
)

// Check is one component's health status in the detailed report.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /api/health: a cheap liveness probe that does not
// touch the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.renderer.Success(w, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	}, "")
}

// DetailedHealth handles GET /api/admin/health: database connectivity,
// pool occupancy, and runtime stats for the admin dashboard.
func (h *Handler) DetailedHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK

	dbCheck := Check{Status: "ok"}
	info, err := h.db.Health(r.Context())
	dbCheck.Latency = info.Latency.Round(time.Microsecond).String()
	if err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
		dbCheck.Status = "down"
		dbCheck.Message = "database unreachable"
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	h.renderer.SuccessStatus(w, httpStatus, map[string]any{
		"status":  status,
		"version": version.Get(),
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
		"checks": map[string]Check{
			"database": dbCheck,
		},
		"database_pool": map[string]any{
			"open_connections": info.OpenConnections,
			"in_use":           info.InUse,
			"idle":             info.Idle,
			"max_open":         info.MaxOpen,
		},
		"runtime": map[string]any{
			"go_version":  runtime.Version(),
			"goroutines":  runtime.NumGoroutine(),
			"alloc":       formatBytes(mem.Alloc),
			"total_alloc": formatBytes(mem.TotalAlloc),
			"sys":         formatBytes(mem.Sys),
			"num_gc":      mem.NumGC,
		},
	}, "")
}

// formatBytes renders a byte count in human units.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
