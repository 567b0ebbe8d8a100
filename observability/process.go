package observability

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats describes the running service process.
type ProcessStats struct {
	PID           int32   `json:"pid"`
	Status        string  `json:"status"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float32 `json:"memory_percent"`
	RSSBytes      uint64  `json:"rss_bytes"`
	Goroutines    int     `json:"goroutines"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// CurrentProcess samples the current process. Fields gopsutil cannot read on this
// platform are left at zero rather than failing the whole sample.
func CurrentProcess(startedAt time.Time) (ProcessStats, error) {
	pid := int32(os.Getpid())
	stats := ProcessStats{
		PID:           pid,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: time.Since(startedAt).Seconds(),
	}
	p, err := process.NewProcess(pid)
	if err != nil {
		return stats, err
	}
	if status, err := p.Status(); err == nil {
		stats.Status = status
	}
	if cpu, err := p.CPUPercent(); err == nil {
		stats.CPUPercent = cpu
	}
	if ram, err := p.MemoryPercent(); err == nil {
		stats.MemoryPercent = ram
	}
	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		stats.RSSBytes = mem.RSS
	}
	return stats, nil
}
