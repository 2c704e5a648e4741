package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	joystick "github.com/doingharm/go-joystick-events"
	"github.com/doingharm/go-joystick-events/internal/bridge"
	"github.com/doingharm/go-joystick-events/internal/config"
	"github.com/doingharm/go-joystick-events/internal/influxdb"
	"github.com/doingharm/go-joystick-events/internal/logging"
	"github.com/doingharm/go-joystick-events/internal/mqtt"
	"github.com/doingharm/go-joystick-events/jsdev"
)

// run wires the sinks, then serves the device until ctx is cancelled. With
// f.wait set a lost device is waited for again instead of ending run.
func run(ctx context.Context, cfg *config.Config, f flags) error {
	log := logging.New(cfg.Logging, version)
	log.Info("starting joystickd",
		"version", version,
		"commit", commit,
		"device", cfg.Device.Path,
		"joystick_id", cfg.Joystick.ID,
	)

	sinks := []bridge.Sink{bridge.NewLogSink(log)}
	health := newSinkHealth(log)

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		var err error
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT connection lost", "error", err)
		})
		sinks = append(sinks, bridge.NewMQTTSink(mqttClient, mqttClient.Topics()))
		health.add("mqtt", mqttClient)
		log.Info("MQTT connected", "broker", cfg.MQTT.Broker.Host)
	}

	if cfg.InfluxDB.Enabled {
		influxClient, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write failed", "error", err)
		})
		sinks = append(sinks, bridge.NewInfluxSink(influxClient))
		health.add("influxdb", influxClient)
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL)
	}

	b := bridge.New(sinks, log, cfg.Joystick.QueueSize)

	if mqttClient != nil {
		topic := mqttClient.Topics().Command(cfg.Joystick.ID)
		if err := mqttClient.Subscribe(topic, mqttClient.QoS(), b.HandleCommand); err != nil {
			return fmt.Errorf("subscribing to commands: %w", err)
		}
		log.Info("listening for commands", "topic", topic)
	}

	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		b.Run(bridgeCtx)
	}()
	go func() {
		defer wg.Done()
		health.run(bridgeCtx, healthInterval)
	}()
	defer func() {
		stopBridge()
		wg.Wait()
		if n := b.Dropped(); n > 0 {
			log.Warn("events dropped during run", "dropped", n)
		}
	}()

	for {
		dev, err := acquire(ctx, cfg.Device.Path, f.wait, log)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		err = serve(ctx, cfg, jsDevice{dev}, b, log)
		if closeErr := dev.Close(); closeErr != nil && !errors.Is(closeErr, jsdev.ErrDeviceClosed) {
			log.Error("error closing device", "error", closeErr)
		}

		if ctx.Err() != nil {
			log.Info("shutdown signal received")
			return nil
		}
		if !f.wait {
			return err
		}
		log.Warn("device lost, waiting for it to return", "device", cfg.Device.Path, "error", err)
	}
}

// Replaced in tests.
var (
	openDevice   = jsdev.Open
	watchDevices = jsdev.Watch
)

// acquire opens path, or with wait set blocks until it appears.
func acquire(ctx context.Context, path string, wait bool, log bridge.Logger) (*jsdev.Device, error) {
	dev, err := openDevice(path)
	if err == nil || !wait {
		return dev, err
	}
	log.Info("waiting for device", "device", path, "error", err)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, errs, err := watchDevices(watchCtx, func(e jsdev.Event) bool {
		return e.Type == jsdev.ConnectEventType && e.Path == path
	})
	if err != nil {
		return nil, fmt.Errorf("watching for %s: %w", path, err)
	}

	for e := range events {
		dev, err := openDevice(e.Path)
		if err != nil {
			log.Warn("device appeared but could not be opened", "device", e.Path, "error", err)
			continue
		}
		return dev, nil
	}

	if err := <-errs; err != nil {
		return nil, fmt.Errorf("watching for %s: %w", path, err)
	}
	return nil, ctx.Err()
}

// device is the part of *jsdev.Device that serve uses.
type device interface {
	Info() jsdev.Info
	Ready() <-chan struct{}
	Done() <-chan struct{}
	Err() error
	Channel(index int) (joystick.Channel, error)
}

// jsDevice adapts *jsdev.Device to device.
type jsDevice struct {
	*jsdev.Device
}

func (d jsDevice) Channel(index int) (joystick.Channel, error) {
	ch, err := d.Device.Channel(index)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// serve polls a joystick built on dev until ctx is cancelled or the device
// is lost. Commands are applied between updates on this goroutine.
func serve(ctx context.Context, cfg *config.Config, dev device, b *bridge.Bridge, log bridge.Logger) error {
	info := dev.Info()
	log.Info("device opened",
		"device", info.Path,
		"name", info.Name,
		"axes", info.Axes,
		"buttons", info.Buttons,
	)

	select {
	case <-dev.Ready():
	case <-time.After(cfg.Device.ReadyTimeout):
		log.Warn("no initial axis state received, starting from centre", "timeout", cfg.Device.ReadyTimeout)
	case <-ctx.Done():
		return nil
	}

	chX, err := dev.Channel(cfg.Device.AxisX)
	if err != nil {
		return fmt.Errorf("axis_x: %w", err)
	}
	chY, err := dev.Channel(cfg.Device.AxisY)
	if err != nil {
		return fmt.Errorf("axis_y: %w", err)
	}

	j := joystick.New(chX, chY)
	applyJoystickConfig(j, cfg.Joystick)
	b.Attach(cfg.Joystick.ID, j)

	ticker := time.NewTicker(cfg.Joystick.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-dev.Done():
			if err := dev.Err(); err != nil {
				return err
			}
			return jsdev.ErrDeviceClosed
		case cmd := <-b.Commands():
			cmd.Apply(j)
			log.Debug("command applied", "enabled", j.Enabled(), "user_state", j.UserState())
		case <-ticker.C:
			j.Update()
		}
	}
}

// applyJoystickConfig fans shared settings out to both axes, then applies
// the per-axis overrides.
func applyJoystickConfig(j *joystick.Joystick, jc config.JoystickConfig) {
	j.SetUserID(jc.UserID)

	shared := jc.AxisConfig
	if shared.Increments != nil {
		j.SetNumIncrements(*shared.Increments)
	}
	if shared.NegativeIncrements != nil {
		j.SetNumNegativeIncrements(*shared.NegativeIncrements)
	}
	if shared.PositiveIncrements != nil {
		j.SetNumPositiveIncrements(*shared.PositiveIncrements)
	}
	if shared.CentreBoundary != nil {
		j.SetCentreBoundary(*shared.CentreBoundary)
	}
	if shared.OuterBoundary != nil {
		j.SetOuterBoundary(*shared.OuterBoundary)
	}
	if shared.IdleTimeout != nil {
		j.SetIdleTimeout(*shared.IdleTimeout)
	}
	if shared.RateLimit != nil {
		j.SetRateLimit(*shared.RateLimit)
	}

	applyAxisConfig(j.X(), jc.X)
	applyAxisConfig(j.Y(), jc.Y)
}

func applyAxisConfig(a joystick.Axis, ac config.AxisConfig) {
	if ac.Increments != nil {
		a.SetNumIncrements(*ac.Increments)
	}
	if ac.NegativeIncrements != nil {
		a.SetNumNegativeIncrements(*ac.NegativeIncrements)
	}
	if ac.PositiveIncrements != nil {
		a.SetNumPositiveIncrements(*ac.PositiveIncrements)
	}
	if ac.CentreBoundary != nil {
		a.SetStartBoundary(*ac.CentreBoundary)
	}
	if ac.OuterBoundary != nil {
		a.SetEndBoundary(*ac.OuterBoundary)
	}
	if ac.IdleTimeout != nil {
		a.SetIdleTimeout(*ac.IdleTimeout)
	}
	if ac.RateLimit != nil {
		a.SetRateLimit(*ac.RateLimit)
	}
}
