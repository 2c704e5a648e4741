package joystick

// Handler receives joystick events. The same Handler may be registered on
// several joysticks and tell them apart through UserID, UserState or the
// axes themselves.
//
// Handlers run synchronously inside Update and must not block.
type Handler interface {
	HandleJoystick(j *Joystick)
}

// HandlerFunc adapts an ordinary function to a Handler.
type HandlerFunc func(j *Joystick)

// HandleJoystick calls f(j).
func (f HandlerFunc) HandleJoystick(j *Joystick) {
	f(j)
}

// slot holds at most one Handler for one event kind.
type slot struct {
	handler    Handler
	registered bool
}

func (s *slot) set(h Handler) {
	if h == nil {
		s.clear()
		return
	}
	s.handler = h
	s.registered = true
}

func (s *slot) clear() {
	s.handler = nil
	s.registered = false
}

func (s *slot) dispatch(j *Joystick) {
	if !s.registered {
		return
	}
	s.handler.HandleJoystick(j)
}
