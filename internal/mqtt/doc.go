// Package mqtt publishes joystick events to an MQTT broker.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Command topic subscriptions, restored on reconnect
//   - Last Will and Testament (LWT) for offline detection
//
// # Topics
//
//	joystick/{id}/changed   position changed on either axis
//	joystick/{id}/idle      both axes went idle
//	joystick/{id}/command   enable/disable and user state commands
//	joystick/status/{client_id}  retained online/offline status
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := client.Topics().Event("pan-tilt", "changed")
//	client.Publish(topic, payload, 1, false)
package mqtt
