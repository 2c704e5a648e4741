package main

import (
	"context"
	"time"

	"github.com/doingharm/go-joystick-events/internal/bridge"
)

// healthInterval is how often connected sinks are checked.
var healthInterval = 30 * time.Second

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

type namedCheck struct {
	name  string
	check healthChecker
}

// sinkHealth periodically checks the MQTT and InfluxDB sinks. Failures are
// logged at warn level on every check; recovery is logged once.
type sinkHealth struct {
	checks    []namedCheck
	unhealthy map[string]bool
	log       bridge.Logger
}

func newSinkHealth(log bridge.Logger) *sinkHealth {
	return &sinkHealth{
		unhealthy: make(map[string]bool),
		log:       log,
	}
}

func (h *sinkHealth) add(name string, c healthChecker) {
	h.checks = append(h.checks, namedCheck{name: name, check: c})
}

// run checks every interval until ctx is cancelled.
func (h *sinkHealth) run(ctx context.Context, interval time.Duration) {
	if len(h.checks) == 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.checkAll(ctx)
		}
	}
}

func (h *sinkHealth) checkAll(ctx context.Context) {
	for _, c := range h.checks {
		if err := c.check.HealthCheck(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			h.unhealthy[c.name] = true
			h.log.Warn("sink unhealthy", "sink", c.name, "error", err)
			continue
		}
		if h.unhealthy[c.name] {
			delete(h.unhealthy, c.name)
			h.log.Info("sink recovered", "sink", c.name)
		}
	}
}
