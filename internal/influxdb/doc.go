// Package influxdb records joystick events in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched non-blocking writes and health checks.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteJoystickEvent(influxdb.JoystickEvent{
//	    JoystickID: "pan-tilt",
//	    Kind:       "changed",
//	    X:          3,
//	    Y:          -1,
//	    Time:       time.Now(),
//	})
//
// # Error Handling
//
// Writes are batched and asynchronous. Write failures are delivered to the
// callback registered with SetOnError; connection and health check errors
// are returned directly.
package influxdb
