// Package bridge forwards joystick events to external sinks.
//
// A Bridge registers itself as the changed and idle handler of a joystick.
// Handlers run on the polling goroutine, so they only snapshot the joystick
// into an Event and enqueue it without blocking; Run delivers queued events
// to every sink on its own goroutine. Events that do not fit in the queue
// are dropped and counted.
//
// Commands received over MQTT travel the other way: HandleCommand decodes
// them and Commands hands them to the polling goroutine, which applies them
// with Command.Apply. The joystick itself is never touched from another
// goroutine.
package bridge
