package bot

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Heartbeat periodically logs process health next to dispatch counters,
// the in-process stand-in for a metrics pipeline.
type Heartbeat struct {
	log        *slog.Logger
	interval   time.Duration
	dispatcher *Dispatcher
}

func NewHeartbeat(log *slog.Logger, interval time.Duration, dispatcher *Dispatcher) *Heartbeat {
	return &Heartbeat{log: log, interval: interval, dispatcher: dispatcher}
}

// Run ticks until the context is canceled. An interval of zero disables
// the heartbeat entirely.
func (h *Heartbeat) Run(ctx context.Context) {
	if h.interval <= 0 {
		return
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		h.log.Warn("heartbeat disabled, process handle unavailable", "error", err)
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var rssMB uint64
			if mem, err := proc.MemoryInfo(); err == nil {
				rssMB = mem.RSS / (1024 * 1024)
			}
			h.log.Info("heartbeat",
				"rss_mb", rssMB,
				"goroutines", runtime.NumGoroutine(),
				"events_handled", h.dispatcher.Handled(),
			)
		}
	}
}
