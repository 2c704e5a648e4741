package joystick

import (
	"time"

	"github.com/doingharm/go-joystick-events/analog"
)

// Channel is a raw analog input such as an ADC pin or a device axis.
type Channel interface {
	Read() uint16
}

// Axis is the single-channel event state machine a Joystick delegates each
// of its two axes to. It decides when its position changed and when it went
// idle; the joystick only combines those decisions.
type Axis interface {
	// Update samples the channel and advances the debounce, rate limit and
	// idle timer by one tick.
	Update()
	// HasChanged reports whether the increment position changed on the most
	// recent Update.
	HasChanged() bool
	// IsIdle reports whether there has been no activity for at least the
	// idle timeout.
	IsIdle() bool

	Enabled() bool
	// Enable turns event reporting on or off. With allowRead set a disabled
	// axis keeps sampling so calibration values can be set manually.
	Enable(on, allowRead bool)

	SetNumIncrements(n uint8)
	SetNumNegativeIncrements(n uint8)
	SetNumPositiveIncrements(n uint8)
	SetStartBoundary(width uint16)
	SetEndBoundary(width uint16)
	SetIdleTimeout(d time.Duration)
	SetRateLimit(d time.Duration)

	// SetStartValue seeds the centre reading the position is measured from.
	SetStartValue(v uint16)
}

// AxisFactory binds a new Axis to ch. ch is nil for disabled joysticks.
type AxisFactory func(ch Channel) Axis

// defaultAxis builds the analog package collaborator.
func defaultAxis(ch Channel) Axis {
	return analog.New(ch)
}

var _ Axis = (*analog.Axis)(nil)
