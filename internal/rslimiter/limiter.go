package rslimiter

import (
	"runtime"
	"sync"
	"time"

	"ccextract/internal/config"

	"github.com/rs/zerolog"
)

// Limiter performs advisory resource checks during long batch runs.
// Above the configured system memory threshold it forces a GC and logs a
// warning; it never aborts the run.
type Limiter struct {
	enabled       bool
	memThreshold  float64
	checkInterval time.Duration
	lastCheck     time.Time
	mu            sync.Mutex
	logger        zerolog.Logger
}

// NewLimiter creates a new Limiter from configuration.
func NewLimiter(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *Limiter {
	interval := time.Duration(cfg.CheckIntervalSeconds) * time.Second
	return &Limiter{
		enabled:       cfg.Enabled,
		memThreshold:  cfg.SystemMemThreshold,
		checkInterval: interval,
		logger:        logger.With().Str("component", "ResourceLimiter").Logger(),
	}
}

// Check samples resource usage if the check interval has elapsed.
// Safe for concurrent use by shard workers.
func (l *Limiter) Check() {
	if l == nil || !l.enabled {
		return
	}

	l.mu.Lock()
	if time.Since(l.lastCheck) < l.checkInterval {
		l.mu.Unlock()
		return
	}
	l.lastCheck = time.Now()
	l.mu.Unlock()

	usage := GetResourceUsage()

	l.logger.Debug().
		Int64("alloc_mb", usage.AllocMB).
		Int64("sys_mb", usage.SysMB).
		Int("goroutines", usage.Goroutines).
		Float64("system_mem_used_percent", usage.SystemMemUsedPercent).
		Float64("cpu_usage_percent", usage.CPUUsagePercent).
		Msg("Resource usage snapshot")

	if l.memThreshold > 0 && usage.SystemMemUsedPercent > l.memThreshold*100 {
		l.logger.Warn().
			Float64("system_mem_used_percent", usage.SystemMemUsedPercent).
			Float64("threshold_percent", l.memThreshold*100).
			Msg("System memory above threshold, forcing GC")
		runtime.GC()
	}
}
