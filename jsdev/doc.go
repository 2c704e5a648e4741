// Package jsdev reads Linux joystick devices (/dev/input/js*) as analog
// channels.
//
// Each axis of an open Device is exposed as a Channel whose Read never
// blocks: a reader goroutine decodes js events and keeps the latest value
// of every axis. Watch reports devices being plugged in and removed.
//
//	dev, err := jsdev.Open("/dev/input/js0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//	<-dev.Ready()
//
//	x, _ := dev.Channel(0)
//	y, _ := dev.Channel(1)
//	j := joystick.New(x, y)
package jsdev
