package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
	Output string
}

// Flags returns CLI flags for logger configuration
func (c *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &c.Level,
			Sources:     cli.EnvVars("YTRIP_LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json)",
			Value:       "console",
			Destination: &c.Format,
			Sources:     cli.EnvVars("YTRIP_LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "log-output",
			Usage:       "Log output (stdout, stderr, a file path, or '-' to discard)",
			Value:       "stderr",
			Destination: &c.Output,
			Sources:     cli.EnvVars("YTRIP_LOG_OUTPUT"),
		},
	}
}

// Configure configures and returns a logger. The returned closer releases
// the output file when one was opened; it is safe to call either way.
func (c *Logger) Configure() (*slog.Logger, func(), error) {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, goerr.New("invalid log level", goerr.V("level", c.Level))
	}

	var output io.Writer
	closer := func() {}
	switch c.Output {
	case "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	case "-":
		output = io.Discard
	default:
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to open log output file", goerr.V("path", c.Output))
		}
		output = f
		closer = func() {
			_ = f.Close()
		}
	}

	// Fields tagged masq:"secret" (proxy credentials) never reach the logs
	filter := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	switch strings.ToLower(c.Format) {
	case "console":
		handler = clog.New(
			clog.WithWriter(output),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
		)
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return nil, nil, goerr.New("invalid log format", goerr.V("format", c.Format))
	}

	return slog.New(handler), closer, nil
}
