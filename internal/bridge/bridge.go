package bridge

import (
	"context"
	"sync/atomic"
	"time"

	joystick "github.com/doingharm/go-joystick-events"
)

// DefaultQueueSize is used when New is given a non-positive size.
const DefaultQueueSize = 64

// commandQueueSize bounds commands waiting for the polling goroutine.
const commandQueueSize = 16

// drainTimeout bounds delivery of queued events after Run is cancelled.
const drainTimeout = 2 * time.Second

// Logger is the logging interface used by the bridge.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Bridge queues joystick events and delivers them to sinks.
type Bridge struct {
	sinks  []Sink
	logger Logger
	now    func() time.Time

	queue    chan Event
	commands chan Command

	dropped         atomic.Uint64
	droppedCommands atomic.Uint64
}

// New returns a Bridge delivering to sinks. Nothing is delivered until Run
// is called.
func New(sinks []Sink, logger Logger, queueSize int) *Bridge {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Bridge{
		sinks:    sinks,
		logger:   logger,
		now:      time.Now,
		queue:    make(chan Event, queueSize),
		commands: make(chan Command, commandQueueSize),
	}
}

// Attach registers the bridge as the changed and idle handler of j,
// replacing any handlers already set. Events carry id as JoystickID.
func (b *Bridge) Attach(id string, j *joystick.Joystick) {
	j.SetChangedHandler(joystick.HandlerFunc(func(j *joystick.Joystick) {
		b.enqueue(snapshot(KindChanged, id, j, b.now()))
	}))
	j.SetIdleHandler(joystick.HandlerFunc(func(j *joystick.Joystick) {
		b.enqueue(snapshot(KindIdle, id, j, b.now()))
	}))
}

// enqueue never blocks; a full queue drops the event.
func (b *Bridge) enqueue(e Event) {
	select {
	case b.queue <- e:
	default:
		n := b.dropped.Add(1)
		b.logger.Warn("event queue full, dropping event",
			"kind", e.Kind,
			"joystick_id", e.JoystickID,
			"dropped_total", n,
		)
	}
}

// Dropped returns the number of events dropped because the queue was full.
func (b *Bridge) Dropped() uint64 {
	return b.dropped.Load()
}

// Run delivers queued events until ctx is cancelled, then delivers what is
// still queued and returns.
func (b *Bridge) Run(ctx context.Context) {
	for {
		select {
		case e := <-b.queue:
			b.deliver(ctx, e)
		case <-ctx.Done():
			b.drain()
			return
		}
	}
}

func (b *Bridge) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case e := <-b.queue:
			b.deliver(ctx, e)
		default:
			return
		}
	}
}

func (b *Bridge) deliver(ctx context.Context, e Event) {
	for _, s := range b.sinks {
		if err := s.Publish(ctx, e); err != nil {
			b.logger.Error("sink publish failed",
				"kind", e.Kind,
				"joystick_id", e.JoystickID,
				"error", err,
			)
		}
	}
}
