package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string           `json:"uptime"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	StartTime     time.Time        `json:"start_time"`
	GoRoutines    int              `json:"goroutines"`
	MemoryAllocMB float64          `json:"memory_alloc_mb"`
	NumCPU        int              `json:"num_cpu"`
	Process       *ProcessStats    `json:"process,omitempty"`
	DNSStats      DNSStatsResponse `json:"dns"`
}

// ProcessStats is the OS view of the server process. Fields the platform
// cannot report are left zero.
type ProcessStats struct {
	PID           int32   `json:"pid"`
	RSSMB         float64 `json:"rss_mb"`
	CPUPercent    float64 `json:"cpu_percent"`
	NumThreads    int32   `json:"num_threads"`
	SystemMemUsed float64 `json:"system_mem_used_percent"`
}

// DNSStatsResponse contains UDP datagram counters.
type DNSStatsResponse struct {
	Received     uint64  `json:"received"`
	Answered     uint64  `json:"answered"`
	FormErr      uint64  `json:"formerr"`
	Truncated    uint64  `json:"truncated"`
	Dropped      uint64  `json:"dropped"`
	RateLimited  uint64  `json:"rate_limited"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}
