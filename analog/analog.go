// Package analog turns a single analog input into increment-change and idle
// events.
//
// The input range is sliced into a number of increments either side of a
// start (centre) value. Readings inside the start boundary are position 0,
// readings inside the end boundary saturate at the outermost increment.
package analog

import "time"

const (
	DefaultIncrements    uint8  = 10
	DefaultEndBoundary   uint16 = 100
	DefaultIdleTimeout          = 10 * time.Second
	DefaultMaxValue      uint16 = 1023
	DefaultStartBoundary uint16 = 0
)

// Input is a raw analog reading.
type Input interface {
	Read() uint16
}

// Axis is a single analog axis. It is not safe for concurrent use.
type Axis struct {
	in  Input
	now func() time.Time

	enabled   bool
	allowRead bool
	resync    bool

	numNegative   uint8
	numPositive   uint8
	startBoundary uint16
	endBoundary   uint16
	idleTimeout   time.Duration
	rateLimit     time.Duration

	minValue   uint16
	maxValue   uint16
	startValue uint16

	value            uint16
	position         int16
	previousPosition int16
	changed          bool

	lastChange   time.Time
	lastActivity time.Time
}

// Option configures an Axis.
type Option func(*Axis)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Axis) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an enabled axis reading in. A nil in gives an axis that never
// samples.
func New(in Input, opts ...Option) *Axis {
	a := &Axis{
		in:            in,
		now:           time.Now,
		enabled:       true,
		numNegative:   DefaultIncrements,
		numPositive:   DefaultIncrements,
		startBoundary: DefaultStartBoundary,
		endBoundary:   DefaultEndBoundary,
		idleTimeout:   DefaultIdleTimeout,
		maxValue:      DefaultMaxValue,
		startValue:    DefaultMaxValue / 2,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.value = a.startValue
	a.lastActivity = a.now()
	return a
}

// Update samples the input and commits a new position if it moved to a
// different increment and the rate limit allows it.
func (a *Axis) Update() {
	a.changed = false
	if a.in == nil {
		return
	}
	if !a.enabled && !a.allowRead {
		return
	}

	a.value = a.in.Read()
	pos := a.positionOf(a.value)

	if !a.enabled || a.resync {
		// track silently so nothing is reported retroactively
		a.previousPosition = a.position
		a.position = pos
		a.resync = !a.enabled
		return
	}
	if pos == a.position {
		return
	}

	now := a.now()
	if a.rateLimit > 0 && !a.lastChange.IsZero() && now.Sub(a.lastChange) < a.rateLimit {
		return
	}
	a.previousPosition = a.position
	a.position = pos
	a.changed = true
	a.lastChange = now
	a.lastActivity = now
}

// positionOf maps a raw reading to an increment in
// [-numNegative, numPositive].
func (a *Axis) positionOf(v uint16) int16 {
	val := int(v)
	start := int(a.startValue)
	sb := int(a.startBoundary)
	eb := int(a.endBoundary)

	switch {
	case val > start+sb:
		return int16(slice(val-(start+sb), int(a.maxValue)-eb-(start+sb), a.numPositive))
	case val < start-sb:
		return -int16(slice((start-sb)-val, (start-sb)-(int(a.minValue)+eb), a.numNegative))
	default:
		return 0
	}
}

// slice returns which of n equal slices of span the offset d falls in,
// counting from 1 and saturating at n.
func slice(d, span int, n uint8) int {
	if n == 0 {
		return 0
	}
	if span <= 0 {
		return int(n)
	}
	p := (d*int(n) + span - 1) / span
	if p > int(n) {
		p = int(n)
	}
	if p < 1 {
		p = 1
	}
	return p
}

// HasChanged reports whether the position changed on the last Update.
func (a *Axis) HasChanged() bool { return a.changed }

// IsIdle reports whether no position change was committed for at least the
// idle timeout. A zero timeout disables idle detection.
func (a *Axis) IsIdle() bool {
	if a.idleTimeout <= 0 {
		return false
	}
	return a.now().Sub(a.lastActivity) >= a.idleTimeout
}

func (a *Axis) Enabled() bool { return a.enabled }

// Enable turns event reporting on or off. With allowRead set a disabled
// axis keeps reading its input so SetMaxNegativeValue and
// SetMaxPositiveValue can be calibrated from Value.
func (a *Axis) Enable(on, allowRead bool) {
	if on && !a.enabled {
		a.resync = true
	}
	a.enabled = on
	a.allowRead = allowRead
	if !on {
		a.changed = false
	}
}

func (a *Axis) SetNumIncrements(n uint8) {
	a.numNegative = n
	a.numPositive = n
}

func (a *Axis) SetNumNegativeIncrements(n uint8) { a.numNegative = n }
func (a *Axis) SetNumPositiveIncrements(n uint8) { a.numPositive = n }
func (a *Axis) SetStartBoundary(width uint16)    { a.startBoundary = width }
func (a *Axis) SetEndBoundary(width uint16)      { a.endBoundary = width }
func (a *Axis) SetIdleTimeout(d time.Duration)   { a.idleTimeout = d }
func (a *Axis) SetRateLimit(d time.Duration)     { a.rateLimit = d }

// SetStartValue sets the centre reading and makes it the current value.
func (a *Axis) SetStartValue(v uint16) {
	a.startValue = v
	a.value = v
	a.position = 0
	a.previousPosition = 0
}

// SetMaxNegativeValue sets the reading of the full negative deflection.
func (a *Axis) SetMaxNegativeValue(v uint16) { a.minValue = v }

// SetMaxPositiveValue sets the reading of the full positive deflection.
func (a *Axis) SetMaxPositiveValue(v uint16) { a.maxValue = v }

func (a *Axis) NumNegativeIncrements() uint8 { return a.numNegative }
func (a *Axis) NumPositiveIncrements() uint8 { return a.numPositive }
func (a *Axis) StartBoundary() uint16        { return a.startBoundary }
func (a *Axis) EndBoundary() uint16          { return a.endBoundary }
func (a *Axis) IdleTimeout() time.Duration   { return a.idleTimeout }
func (a *Axis) RateLimit() time.Duration     { return a.rateLimit }
func (a *Axis) StartValue() uint16           { return a.startValue }
func (a *Axis) MaxNegativeValue() uint16     { return a.minValue }
func (a *Axis) MaxPositiveValue() uint16     { return a.maxValue }

// Value returns the last raw reading.
func (a *Axis) Value() uint16 { return a.value }

// Position returns the current increment, negative below centre.
func (a *Axis) Position() int16 { return a.position }

// PreviousPosition returns the increment before the last change.
func (a *Axis) PreviousPosition() int16 { return a.previousPosition }
