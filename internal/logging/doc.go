// Package logging provides structured logging for joystickd.
//
// It wraps log/slog with JSON or text output, level filtering and default
// service and version fields on every entry:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("device opened", "path", path)
package logging
