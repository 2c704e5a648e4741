package mqtt

import "fmt"

// DefaultTopicPrefix is used when the configured prefix is empty.
const DefaultTopicPrefix = "joystick"

// Topics builds joystick topics under a common prefix.
//
//	topics := mqtt.NewTopics("joystick")
//	topics.Event("pan-tilt", "changed") // "joystick/pan-tilt/changed"
type Topics struct {
	prefix string
}

// NewTopics returns topic builders for prefix.
func NewTopics(prefix string) Topics {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	return Topics{prefix: prefix}
}

// Event returns the topic for an event kind of a joystick.
func (t Topics) Event(joystickID, kind string) string {
	return fmt.Sprintf("%s/%s/%s", t.prefix, joystickID, kind)
}

// Command returns the topic joystickd listens on for a joystick.
func (t Topics) Command(joystickID string) string {
	return fmt.Sprintf("%s/%s/command", t.prefix, joystickID)
}

// Status returns the retained status topic of a client.
func (t Topics) Status(clientID string) string {
	return fmt.Sprintf("%s/status/%s", t.prefix, clientID)
}
