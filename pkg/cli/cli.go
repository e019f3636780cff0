package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ytrip/pkg/cli/config"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg    config.Logger
		workspaceCfg config.Workspace
		downloadCfg  config.Download
	)
	var logger *slog.Logger
	logCloser := func() {}
	defer func() {
		logCloser()
	}()

	flags := loggerCfg.Flags()
	flags = append(flags, workspaceCfg.Flags()...)
	flags = append(flags, downloadCfg.Flags()...)

	app := &cli.Command{
		Name:      "ytrip",
		Usage:     "Download a YouTube video or playlist via yt-dlp",
		Version:   types.Version,
		ArgsUsage: "[url]",
		Flags:     flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			newLogger, closer, err := loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = newLogger
			logCloser = closer

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runDownload(ctx, c, &workspaceCfg, &downloadCfg)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
