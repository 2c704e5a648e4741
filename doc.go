// Package joystick combines two analog axes into a joystick that reports
// position changes and idleness to registered handlers.
//
// The joystick is poll driven: call Update regularly from one goroutine.
// Each Update advances both axes, calls the changed handler when either
// enabled axis moved to a new increment, and calls the idle handler once
// when both axes become idle. The idle handler fires again only after the
// joystick has left idle in between.
//
//	j := joystick.New(x, y)
//	j.SetNumIncrements(5)
//	j.SetChangedHandler(joystick.HandlerFunc(func(j *joystick.Joystick) {
//	    x := j.X().(*analog.Axis)
//	    y := j.Y().(*analog.Axis)
//	    fmt.Println("moved to", x.Position(), y.Position())
//	}))
//	for range time.Tick(10 * time.Millisecond) {
//	    j.Update()
//	}
//
// The Axis interface carries no position. Axes are built by analog.New
// unless WithAxisFactory supplies another implementation, so positions are
// read by asserting X and Y to *analog.Axis as above; with a custom factory
// assert to that factory's type instead. A Joystick is not safe for
// concurrent use.
package joystick
