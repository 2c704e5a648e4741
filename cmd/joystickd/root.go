package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doingharm/go-joystick-events/internal/config"
)

type flags struct {
	configPath string
	device     string
	wait       bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "joystickd",
		Short: "Forward joystick position and idle events to MQTT and InfluxDB",
		Long: `joystickd reads two axes of a Linux joystick, slices them into
increments and publishes an event whenever the stick moves to a new
increment or goes idle.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, f)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to YAML config file (defaults apply when empty)")
	cmd.Flags().StringVar(&f.device, "device", "", "Joystick device node, overrides device.path")
	cmd.Flags().BoolVar(&f.wait, "wait", false, "Wait for the device to be plugged in and survive unplugging")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Enable debug logging")

	return cmd
}

// loadConfig applies flags on top of the file or default configuration.
func loadConfig(f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if f.device != "" {
		cfg.Device.Path = f.device
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
