package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	joystick "github.com/doingharm/go-joystick-events"
)

// ErrEmptyCommand is returned for a command that sets nothing.
var ErrEmptyCommand = errors.New("bridge: empty command")

// Command changes joystick state from outside the polling goroutine.
// Nil fields are left unchanged.
//
//	{"enable": false, "allow_read": true}
//	{"user_state": 3}
type Command struct {
	Enable    *bool `json:"enable,omitempty"`
	AllowRead *bool `json:"allow_read,omitempty"`
	UserState *uint `json:"user_state,omitempty"`
}

// DecodeCommand parses a JSON command payload.
func DecodeCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decoding command: %w", err)
	}
	if cmd.Enable == nil && cmd.UserState == nil {
		return Command{}, ErrEmptyCommand
	}
	return cmd, nil
}

// Apply applies cmd to j. It must be called from the goroutine that calls
// j.Update. AllowRead is only meaningful together with Enable.
func (cmd Command) Apply(j *joystick.Joystick) {
	if cmd.Enable != nil {
		allowRead := cmd.AllowRead != nil && *cmd.AllowRead
		j.Enable(*cmd.Enable, allowRead)
	}
	if cmd.UserState != nil {
		j.SetUserState(*cmd.UserState)
	}
}

// HandleCommand decodes payload and queues it for Commands. Its signature
// matches mqtt.MessageHandler. Invalid and overflowing commands are logged
// and dropped.
func (b *Bridge) HandleCommand(topic string, payload []byte) {
	cmd, err := DecodeCommand(payload)
	if err != nil {
		b.logger.Warn("ignoring invalid command", "topic", topic, "error", err)
		return
	}

	select {
	case b.commands <- cmd:
	default:
		n := b.droppedCommands.Add(1)
		b.logger.Warn("command queue full, dropping command", "topic", topic, "dropped_total", n)
	}
}

// Commands returns the queue of decoded commands.
func (b *Bridge) Commands() <-chan Command {
	return b.commands
}
