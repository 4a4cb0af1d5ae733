package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/jroosing/framedns/internal/api/models"
	"github.com/jroosing/framedns/internal/helpers"
)

// Health godoc
// @Summary Health check
// @Description Reports "ok", or "degraded" when the settings store is unreachable
// @Tags system
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.StatusResponse
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Health(); err != nil {
			h.logger.Warn("settings store unhealthy", "err", err)
			c.JSON(http.StatusServiceUnavailable, models.StatusResponse{Status: "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "ok"})
}

// Stats godoc
// @Summary Server statistics
// @Description Returns runtime, process and datagram statistics
// @Tags system
// @Produce json
// @Success 200 {object} models.ServerStatsResponse
// @Security ApiKeyAuth
// @Router /stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	resp := models.ServerStatsResponse{
		Uptime:        uptime.Round(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     h.startTime,
		GoRoutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(m.Alloc) / 1024 / 1024,
		NumCPU:        runtime.NumCPU(),
		Process:       h.processStats(c),
	}

	if fn := h.getDNSStatsFunc(); fn != nil {
		s := fn()
		resp.DNSStats = models.DNSStatsResponse{
			Received:     s.Received,
			Answered:     s.Answered,
			FormErr:      s.FormErr,
			Truncated:    s.Truncated,
			Dropped:      s.Dropped,
			RateLimited:  s.RateLimited,
			AvgLatencyMs: s.AvgLatencyMs,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// processStats collects what gopsutil can report for this process. It
// returns nil when the process cannot be inspected at all.
func (h *Handler) processStats(c *gin.Context) *models.ProcessStats {
	ctx := c.Request.Context()
	pid := helpers.ClampIntToInt32(os.Getpid())

	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		h.logger.Debug("process stats unavailable", "err", err)
		return nil
	}

	ps := &models.ProcessStats{PID: pid}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		ps.RSSMB = float64(mi.RSS) / 1024 / 1024
	}
	if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
		ps.CPUPercent = cpu
	}
	if n, err := p.NumThreadsWithContext(ctx); err == nil {
		ps.NumThreads = n
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		ps.SystemMemUsed = vm.UsedPercent
	}
	return ps
}
