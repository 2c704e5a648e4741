// Package config loads joystickd configuration.
//
// Configuration is read from a YAML file over built-in defaults, then
// selected values are overridden from the environment:
//
//	JOYSTICKD_DEVICE_PATH
//	JOYSTICKD_MQTT_HOST
//	JOYSTICKD_MQTT_USERNAME
//	JOYSTICKD_MQTT_PASSWORD
//	JOYSTICKD_INFLUXDB_TOKEN
//
// Joystick settings at the top of the joystick section apply to both axes;
// the x and y subsections override one axis afterwards:
//
//	joystick:
//	  increments: 10
//	  idle_timeout: 10s
//	  x:
//	    idle_timeout: 2s
package config
