package joystick

import (
	"testing"
	"time"

	"github.com/doingharm/go-joystick-events/analog"
)

// fakeAxis reports whatever the test sets and records configuration.
type fakeAxis struct {
	ch Channel

	updates   int
	changed   bool
	idle      bool
	enabled   bool
	allowRead bool

	numNegative   uint8
	numPositive   uint8
	startBoundary uint16
	endBoundary   uint16
	idleTimeout   time.Duration
	rateLimit     time.Duration
	startValue    uint16
	startSeeded   bool
}

func (a *fakeAxis) Update()          { a.updates++ }
func (a *fakeAxis) HasChanged() bool { return a.changed }
func (a *fakeAxis) IsIdle() bool     { return a.idle }
func (a *fakeAxis) Enabled() bool    { return a.enabled }

func (a *fakeAxis) Enable(on, allowRead bool) {
	a.enabled = on
	a.allowRead = allowRead
}

func (a *fakeAxis) SetNumIncrements(n uint8) {
	a.numNegative = n
	a.numPositive = n
}

func (a *fakeAxis) SetNumNegativeIncrements(n uint8) { a.numNegative = n }
func (a *fakeAxis) SetNumPositiveIncrements(n uint8) { a.numPositive = n }
func (a *fakeAxis) SetStartBoundary(width uint16)    { a.startBoundary = width }
func (a *fakeAxis) SetEndBoundary(width uint16)      { a.endBoundary = width }
func (a *fakeAxis) SetIdleTimeout(d time.Duration)   { a.idleTimeout = d }
func (a *fakeAxis) SetRateLimit(d time.Duration)     { a.rateLimit = d }

func (a *fakeAxis) SetStartValue(v uint16) {
	a.startValue = v
	a.startSeeded = true
}

type fixedChannel uint16

func (c fixedChannel) Read() uint16 { return uint16(c) }

// newFakeJoystick returns a joystick over two enabled fake axes.
func newFakeJoystick() (*Joystick, *fakeAxis, *fakeAxis) {
	var axes []*fakeAxis
	factory := func(ch Channel) Axis {
		a := &fakeAxis{ch: ch, enabled: true}
		axes = append(axes, a)
		return a
	}
	j := New(fixedChannel(300), fixedChannel(700), WithAxisFactory(factory))
	return j, axes[0], axes[1]
}

type counter struct {
	calls int
	last  *Joystick
}

func (c *counter) HandleJoystick(j *Joystick) {
	c.calls++
	c.last = j
}

func TestNew_SeedsStartValues(t *testing.T) {
	_, x, y := newFakeJoystick()

	if !x.startSeeded || x.startValue != 300 {
		t.Errorf("x start value = %d (seeded %v), want 300", x.startValue, x.startSeeded)
	}
	if !y.startSeeded || y.startValue != 700 {
		t.Errorf("y start value = %d (seeded %v), want 700", y.startValue, y.startSeeded)
	}
	if x.ch != fixedChannel(300) || y.ch != fixedChannel(700) {
		t.Error("axes not bound to their channels")
	}
}

func TestNew_DefaultCentreBoundary(t *testing.T) {
	_, x, y := newFakeJoystick()

	if x.startBoundary != DefaultCentreBoundary || y.startBoundary != DefaultCentreBoundary {
		t.Errorf("centre boundary = %d/%d, want %d", x.startBoundary, y.startBoundary, DefaultCentreBoundary)
	}
}

func TestNewDisabled(t *testing.T) {
	var axes []*fakeAxis
	j := NewDisabled(WithAxisFactory(func(ch Channel) Axis {
		a := &fakeAxis{ch: ch, enabled: true}
		axes = append(axes, a)
		return a
	}))

	if j.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	for i, a := range axes {
		if a.ch != nil {
			t.Errorf("axis %d bound to a channel", i)
		}
		if a.startSeeded {
			t.Errorf("axis %d was read", i)
		}
		if a.allowRead {
			t.Errorf("axis %d allows reads", i)
		}
	}
}

func TestNewDisabled_DefaultAxes(t *testing.T) {
	j := NewDisabled()
	j.Update()

	if j.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if j.HasChanged() {
		t.Error("HasChanged() = true for unbound joystick")
	}
	if _, ok := j.X().(*analog.Axis); !ok {
		t.Errorf("X() = %T, want *analog.Axis", j.X())
	}
}

func TestUpdate_UpdatesBothAxes(t *testing.T) {
	j, x, y := newFakeJoystick()
	j.Update()
	j.Update()

	if x.updates != 2 || y.updates != 2 {
		t.Errorf("updates = %d/%d, want 2/2", x.updates, y.updates)
	}
}

func TestUpdate_ChangedHandler(t *testing.T) {
	tests := []struct {
		name     string
		xChanged bool
		yChanged bool
		want     int
	}{
		{"neither axis", false, false, 0},
		{"x only", true, false, 1},
		{"y only", false, true, 1},
		{"both axes fire once", true, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, x, y := newFakeJoystick()
			c := &counter{}
			j.SetChangedHandler(c)

			x.changed = tt.xChanged
			y.changed = tt.yChanged
			j.Update()

			if c.calls != tt.want {
				t.Errorf("changed handler calls = %d, want %d", c.calls, tt.want)
			}
			if tt.want > 0 && c.last != j {
				t.Error("handler did not receive the joystick")
			}
		})
	}
}

func TestUpdate_NoSpuriousChangeAfterConstruction(t *testing.T) {
	j := New(fixedChannel(512), fixedChannel(512))
	c := &counter{}
	j.SetChangedHandler(c)

	j.Update()

	if c.calls != 0 {
		t.Errorf("changed handler calls = %d after first update, want 0", c.calls)
	}
}

func TestUpdate_IdleFiresOncePerEpisode(t *testing.T) {
	j, x, y := newFakeJoystick()
	c := &counter{}
	j.SetIdleHandler(c)

	steps := []struct {
		xIdle, yIdle bool
		wantCalls    int
	}{
		{false, false, 0},
		{true, false, 0},
		{true, true, 1},
		{true, true, 1},
		{true, true, 1},
		{false, true, 1}, // x active re-arms
		{true, true, 2},
		{true, true, 2},
		{true, false, 2},
		{false, false, 2},
		{true, true, 3},
	}

	for i, s := range steps {
		x.idle, y.idle = s.xIdle, s.yIdle
		j.Update()
		if c.calls != s.wantCalls {
			t.Fatalf("step %d: idle handler calls = %d, want %d", i, c.calls, s.wantCalls)
		}
	}
}

func TestUpdate_IdleAtBaseline(t *testing.T) {
	j, x, y := newFakeJoystick()
	c := &counter{}
	j.SetIdleHandler(c)

	x.idle, y.idle = true, true
	j.Update()
	if c.calls != 1 {
		t.Fatalf("calls = %d, want 1 for baseline idle", c.calls)
	}

	x.idle = false
	x.changed = true
	j.Update()
	x.changed = false
	for i := 0; i < 5; i++ {
		j.Update()
	}
	x.idle = true
	j.Update()
	j.Update()

	if c.calls != 2 {
		t.Errorf("calls = %d, want 2", c.calls)
	}
}

func TestUpdate_DisabledSuppressesHandlers(t *testing.T) {
	j, x, y := newFakeJoystick()
	changed, idle := &counter{}, &counter{}
	j.SetChangedHandler(changed)
	j.SetIdleHandler(idle)

	j.Enable(false, true)
	x.changed = true
	x.idle, y.idle = true, true
	j.Update()

	if changed.calls != 0 {
		t.Errorf("changed calls = %d while disabled, want 0", changed.calls)
	}
	if idle.calls != 0 {
		t.Errorf("idle calls = %d while disabled, want 0", idle.calls)
	}
	if !x.allowRead || !y.allowRead {
		t.Error("allowRead not propagated to both axes")
	}

	// re-enabling within the same idle episode must not fire stale events
	x.changed = false
	j.Enable(true, false)
	j.Update()
	j.Update()

	if changed.calls != 0 || idle.calls != 0 {
		t.Errorf("calls after re-enable = %d/%d, want 0/0", changed.calls, idle.calls)
	}

	y.idle = false
	j.Update()
	y.idle = true
	j.Update()
	if idle.calls != 1 {
		t.Errorf("idle calls after new episode = %d, want 1", idle.calls)
	}
}

func TestUpdate_DisabledAxisChangeIgnored(t *testing.T) {
	j, x, y := newFakeJoystick()
	c := &counter{}
	j.SetChangedHandler(c)

	y.Enable(false, false)
	y.changed = true
	j.Update()
	if c.calls != 0 {
		t.Fatalf("calls = %d for change on a disabled axis, want 0", c.calls)
	}

	x.changed = true
	j.Update()
	if c.calls != 1 {
		t.Errorf("calls = %d for change on the enabled axis, want 1", c.calls)
	}
}

func TestUpdate_LatchWithoutHandler(t *testing.T) {
	j, x, y := newFakeJoystick()
	x.idle, y.idle = true, true
	j.Update()

	c := &counter{}
	j.SetIdleHandler(c)
	j.Update()
	if c.calls != 0 {
		t.Errorf("calls = %d for an episode already under way, want 0", c.calls)
	}
}

func TestHandlers_Replace(t *testing.T) {
	j, x, _ := newFakeJoystick()
	first, second := &counter{}, &counter{}

	j.SetChangedHandler(first)
	j.SetChangedHandler(second)
	x.changed = true
	j.Update()

	if first.calls != 0 || second.calls != 1 {
		t.Errorf("calls = %d/%d, want 0/1", first.calls, second.calls)
	}
}

func TestHandlers_Clear(t *testing.T) {
	j, x, y := newFakeJoystick()
	calls := 0
	h := HandlerFunc(func(*Joystick) { calls++ })

	j.SetChangedHandler(h)
	j.SetIdleHandler(h)
	if !j.HasChangedHandler() || !j.HasIdleHandler() {
		t.Fatal("handlers not registered")
	}

	j.ClearChangedHandler()
	j.SetIdleHandler(nil)
	if j.HasChangedHandler() || j.HasIdleHandler() {
		t.Fatal("handlers still registered after clearing")
	}

	x.changed = true
	x.idle, y.idle = true, true
	j.Update()
	if calls != 0 {
		t.Errorf("calls = %d after clearing, want 0", calls)
	}
}

func TestHandlers_SharedAcrossJoysticks(t *testing.T) {
	j1, x1, _ := newFakeJoystick()
	j2, x2, _ := newFakeJoystick()
	j1.SetUserID(1)
	j2.SetUserID(2)

	var seen []uint
	h := HandlerFunc(func(j *Joystick) { seen = append(seen, j.UserID()) })
	j1.SetChangedHandler(h)
	j2.SetChangedHandler(h)

	x2.changed = true
	j2.Update()
	x1.changed = true
	j1.Update()

	if len(seen) != 2 || seen[0] != 2 || seen[1] != 1 {
		t.Errorf("seen = %v, want [2 1]", seen)
	}
}

func TestHasChanged(t *testing.T) {
	j, x, y := newFakeJoystick()

	if j.HasChanged() {
		t.Error("HasChanged() = true with no changes")
	}
	y.changed = true
	if !j.HasChanged() {
		t.Error("HasChanged() = false with y changed")
	}
	y.changed = false
	x.changed = true
	if !j.HasChanged() {
		t.Error("HasChanged() = false with x changed")
	}
}

func TestIsIdle_IndependentOfEnableAndLatch(t *testing.T) {
	j, x, y := newFakeJoystick()
	c := &counter{}
	j.SetIdleHandler(c)

	x.idle, y.idle = true, true
	j.Update()
	if !j.IsIdle() {
		t.Error("IsIdle() = false after idle fired")
	}

	j.Enable(false, false)
	if !j.IsIdle() {
		t.Error("IsIdle() = false while disabled")
	}

	y.idle = false
	if j.IsIdle() {
		t.Error("IsIdle() = true with y active")
	}
}

func TestEnabled_RequiresBothAxes(t *testing.T) {
	tests := []struct {
		name   string
		x, y   bool
		expect bool
	}{
		{"both enabled", true, true, true},
		{"x only", true, false, false},
		{"y only", false, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, x, y := newFakeJoystick()
			x.enabled, y.enabled = tt.x, tt.y
			if got := j.Enabled(); got != tt.expect {
				t.Errorf("Enabled() = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestUpdate_OneAxisDisabledSuppressesIdle(t *testing.T) {
	j, x, y := newFakeJoystick()
	c := &counter{}
	j.SetIdleHandler(c)

	x.Enable(false, false)
	x.idle, y.idle = true, true
	j.Update()

	if c.calls != 0 {
		t.Errorf("idle calls = %d with one axis disabled, want 0", c.calls)
	}
}

func TestConfigurationFanOut(t *testing.T) {
	j, x, y := newFakeJoystick()

	j.SetNumIncrements(7)
	if x.numNegative != 7 || x.numPositive != 7 || y.numNegative != 7 || y.numPositive != 7 {
		t.Errorf("increments = %d/%d %d/%d, want all 7", x.numNegative, x.numPositive, y.numNegative, y.numPositive)
	}

	j.SetNumNegativeIncrements(3)
	j.SetNumPositiveIncrements(5)
	if x.numNegative != 3 || y.numNegative != 3 || x.numPositive != 5 || y.numPositive != 5 {
		t.Error("half-range increments not applied to both axes")
	}

	j.SetCentreBoundary(150)
	j.SetOuterBoundary(40)
	if x.startBoundary != 150 || y.startBoundary != 150 || x.endBoundary != 40 || y.endBoundary != 40 {
		t.Error("boundaries not applied to both axes")
	}

	j.SetIdleTimeout(5 * time.Second)
	j.SetRateLimit(25 * time.Millisecond)
	if x.idleTimeout != 5*time.Second || y.idleTimeout != 5*time.Second {
		t.Errorf("idle timeout = %v/%v, want 5s", x.idleTimeout, y.idleTimeout)
	}
	if x.rateLimit != 25*time.Millisecond || y.rateLimit != 25*time.Millisecond {
		t.Errorf("rate limit = %v/%v, want 25ms", x.rateLimit, y.rateLimit)
	}
}

func TestConfigurationPerAxisOverride(t *testing.T) {
	j := New(fixedChannel(512), fixedChannel(512))
	j.SetIdleTimeout(5 * time.Second)

	j.X().SetIdleTimeout(2 * time.Second)

	x := j.X().(*analog.Axis)
	y := j.Y().(*analog.Axis)
	if x.IdleTimeout() != 2*time.Second {
		t.Errorf("x idle timeout = %v, want 2s", x.IdleTimeout())
	}
	if y.IdleTimeout() != 5*time.Second {
		t.Errorf("y idle timeout = %v, want 5s", y.IdleTimeout())
	}
}

func TestUserTags(t *testing.T) {
	j, _, _ := newFakeJoystick()

	if j.UserID() != 0 || j.UserState() != 0 {
		t.Errorf("defaults = %d/%d, want 0/0", j.UserID(), j.UserState())
	}

	j.SetUserID(42)
	j.SetUserState(7)
	if j.UserID() != 42 {
		t.Errorf("UserID() = %d, want 42", j.UserID())
	}
	if j.UserState() != 7 {
		t.Errorf("UserState() = %d, want 7", j.UserState())
	}
}
