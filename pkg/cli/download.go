package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytrip/pkg/cli/config"
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
	"github.com/m-mizutani/ytrip/pkg/infra/engine"
	"github.com/m-mizutani/ytrip/pkg/infra/runlog"
	"github.com/m-mizutani/ytrip/pkg/usecase"
	"github.com/m-mizutani/ytrip/pkg/utils/progress"
	"github.com/urfave/cli/v3"
)

func runDownload(ctx context.Context, c *cli.Command, workspaceCfg *config.Workspace, downloadCfg *config.Download) error {
	logger := ctxlog.From(ctx)
	console := consoleWriter(c)

	url, err := resolveURL(c, console)
	if err != nil {
		return err
	}

	if !model.IsSupportedURL(url) {
		fmt.Fprintln(console, "Invalid or unsupported YouTube URL.")
		return goerr.New("unsupported URL",
			goerr.T(types.ErrTagInvalidInput),
			goerr.V("url", url),
		)
	}

	outputDir, ffmpegPath, err := workspaceCfg.Resolve()
	if err != nil {
		return err
	}

	runCtx, err := usecase.PrepareRun(ctx, outputDir, ffmpegPath)
	if err != nil {
		if errors.Is(err, usecase.ErrFFmpegNotFound) {
			fmt.Fprintf(console, "ffmpeg not found at %s. Place the ffmpeg binary next to the program or pass --ffmpeg.\n", ffmpegPath)
		}
		return err
	}

	fmt.Fprintf(console, "Output folder: %s\n", runCtx.OutputDir)
	fmt.Fprintf(console, "Log file: %s\n", runCtx.LogPath)

	overrides, err := downloadCfg.Options(c.IsSet)
	if err != nil {
		return err
	}
	opts := model.NewDownloadOptions(runCtx, overrides...)

	logger.Debug("Resolved download options",
		slog.String("run_id", runCtx.ID.String()),
		slog.Any("options", opts),
	)

	runLogger, err := runlog.New(runCtx.LogPath, runlog.WithConsole(console))
	if err != nil {
		return goerr.Wrap(err, "failed to create run logger")
	}

	eng := engine.New(
		engine.WithRunLogger(runLogger),
		engine.WithProgress(progress.New(progress.WithWriter(console))),
	)

	uc := usecase.NewDownload(eng, runLogger)
	result, err := uc.Execute(ctx, runCtx, opts, url)
	if err != nil {
		return err
	}

	if result.Succeeded() {
		color.New(color.FgGreen).Fprintln(console, "Download complete.")
	} else {
		// The engine already ran and logged its own outcome, so a non-zero
		// exit code is reported on the console but does not fail the command.
		color.New(color.FgYellow).Fprintf(console, "Download finished with exit code %d. See log for details.\n", result.ExitCode)
	}

	return nil
}

func resolveURL(c *cli.Command, console io.Writer) (string, error) {
	if c.Args().Len() > 0 {
		// Argument URLs pass through untouched; only interactive input
		// is stripped of surrounding whitespace.
		return c.Args().First(), nil
	}
	return promptURL(consoleReader(c), console)
}

// promptURL asks for a URL interactively when none was given as an argument.
// A line terminated by EOF instead of a newline is still accepted.
func promptURL(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Paste a YouTube URL: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && line == "" {
		return "", goerr.Wrap(err, "failed to read URL from input", goerr.T(types.ErrTagInvalidInput))
	}
	return strings.TrimSpace(line), nil
}

func consoleWriter(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func consoleReader(c *cli.Command) io.Reader {
	if r := c.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
