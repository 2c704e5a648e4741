package joystick

import "time"

// DefaultCentreBoundary is the centre dead zone New applies to both axes.
const DefaultCentreBoundary uint16 = 200

// Joystick merges two independent axes into one event source: a changed
// event whenever either axis moves to a new increment, and a single idle
// event once both axes have been idle.
//
// A Joystick is driven by calling Update from one polling loop. It does no
// locking, starts no goroutines and does not allocate after construction.
type Joystick struct {
	x, y Axis

	// idleFired is set once the current idle episode has been seen and is
	// cleared as soon as either axis becomes active.
	idleFired bool

	userID    uint
	userState uint

	changed slot
	idle    slot
}

type options struct {
	factory AxisFactory
}

// Option configures a Joystick at construction.
type Option func(*options)

// WithAxisFactory replaces the analog axis collaborator.
func WithAxisFactory(f AxisFactory) Option {
	return func(o *options) {
		if f != nil {
			o.factory = f
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{factory: defaultAxis}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New creates a joystick reading chX and chY. Each axis is seeded with an
// immediate reading of its channel so the first Update does not report a
// change from an uninitialised baseline.
func New(chX, chY Channel, opts ...Option) *Joystick {
	o := buildOptions(opts)

	j := &Joystick{
		x: o.factory(chX),
		y: o.factory(chY),
	}
	if chX != nil {
		j.x.SetStartValue(chX.Read())
	}
	if chY != nil {
		j.y.SetStartValue(chY.Read())
	}
	j.SetCentreBoundary(DefaultCentreBoundary)

	return j
}

// NewDisabled creates a joystick with no channels bound and both axes
// disabled.
func NewDisabled(opts ...Option) *Joystick {
	o := buildOptions(opts)

	j := &Joystick{
		x: o.factory(nil),
		y: o.factory(nil),
	}
	j.Enable(false, false)

	return j
}

// Update advances both axes and dispatches the changed and idle handlers.
// It must be called regularly from a single polling loop.
func (j *Joystick) Update() {
	j.x.Update()
	j.y.Update()

	if axisChanged(j.x) || axisChanged(j.y) {
		j.changed.dispatch(j)
	}

	idle := j.x.IsIdle() && j.y.IsIdle()

	if j.idleFired && !idle {
		j.idleFired = false
	}
	if !j.idleFired && idle {
		if j.Enabled() {
			j.idle.dispatch(j)
		}
		// latch even when disabled so re-enabling does not fire a stale event
		j.idleFired = true
	}
}

func axisChanged(a Axis) bool {
	return a.Enabled() && a.HasChanged()
}

// X returns the horizontal axis. Settings applied to it directly override
// the joystick-wide ones.
func (j *Joystick) X() Axis { return j.x }

// Y returns the vertical axis.
func (j *Joystick) Y() Axis { return j.y }

// SetChangedHandler registers h for position changes on either axis,
// replacing any previous handler. A nil h clears the slot.
func (j *Joystick) SetChangedHandler(h Handler) { j.changed.set(h) }

// SetIdleHandler registers h for the start of each idle episode, replacing
// any previous handler. A nil h clears the slot.
func (j *Joystick) SetIdleHandler(h Handler) { j.idle.set(h) }

// ClearChangedHandler removes the changed handler.
func (j *Joystick) ClearChangedHandler() { j.changed.clear() }

// ClearIdleHandler removes the idle handler.
func (j *Joystick) ClearIdleHandler() { j.idle.clear() }

// HasChangedHandler reports whether a changed handler is registered.
func (j *Joystick) HasChangedHandler() bool { return j.changed.registered }

// HasIdleHandler reports whether an idle handler is registered.
func (j *Joystick) HasIdleHandler() bool { return j.idle.registered }

// SetNumIncrements splits both halves of both axes into n increments.
func (j *Joystick) SetNumIncrements(n uint8) {
	j.x.SetNumIncrements(n)
	j.y.SetNumIncrements(n)
}

// SetNumNegativeIncrements sets the increments below centre on both axes.
func (j *Joystick) SetNumNegativeIncrements(n uint8) {
	j.x.SetNumNegativeIncrements(n)
	j.y.SetNumNegativeIncrements(n)
}

// SetNumPositiveIncrements sets the increments above centre on both axes.
func (j *Joystick) SetNumPositiveIncrements(n uint8) {
	j.x.SetNumPositiveIncrements(n)
	j.y.SetNumPositiveIncrements(n)
}

// SetCentreBoundary sets the width of the dead zone around the centre.
func (j *Joystick) SetCentreBoundary(width uint16) {
	j.x.SetStartBoundary(width)
	j.y.SetStartBoundary(width)
}

// SetOuterBoundary sets the width of the dead zone at both extremes.
func (j *Joystick) SetOuterBoundary(width uint16) {
	j.x.SetEndBoundary(width)
	j.y.SetEndBoundary(width)
}

// SetIdleTimeout sets how long both axes must be inactive before idle.
func (j *Joystick) SetIdleTimeout(d time.Duration) {
	j.x.SetIdleTimeout(d)
	j.y.SetIdleTimeout(d)
}

// SetRateLimit sets the minimum time between change events on each axis.
func (j *Joystick) SetRateLimit(d time.Duration) {
	j.x.SetRateLimit(d)
	j.y.SetRateLimit(d)
}

// HasChanged reports whether either axis changed on the last Update.
func (j *Joystick) HasChanged() bool {
	return j.x.HasChanged() || j.y.HasChanged()
}

// IsIdle reports whether both axes are idle, whether or not the idle
// handler has fired or the joystick is enabled.
func (j *Joystick) IsIdle() bool {
	return j.x.IsIdle() && j.y.IsIdle()
}

// Enabled reports whether both axes are enabled. A joystick with only one
// axis enabled is not enabled and will not fire its idle handler.
func (j *Joystick) Enabled() bool {
	return j.x.Enabled() && j.y.Enabled()
}

// Enable enables or disables both axes. When disabled with allowRead set,
// the axes keep sampling but no handlers fire.
func (j *Joystick) Enable(on, allowRead bool) {
	j.x.Enable(on, allowRead)
	j.y.Enable(on, allowRead)
}

// UserID returns the caller-interpreted identifier. It is not unique and
// defaults to 0.
func (j *Joystick) UserID() uint { return j.userID }

// SetUserID sets the caller-interpreted identifier. It is not passed on to
// the axes.
func (j *Joystick) SetUserID(id uint) { j.userID = id }

// UserState returns the caller-interpreted state.
func (j *Joystick) UserState() uint { return j.userState }

// SetUserState sets the caller-interpreted state, eg ON, OFF or INACTIVE.
func (j *Joystick) SetUserState(s uint) { j.userState = s }
