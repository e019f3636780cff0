package usecase

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
)

// ErrFFmpegNotFound indicates the ffmpeg binary is absent from its expected
// location. The run stops before any network activity.
var ErrFFmpegNotFound = goerr.New("ffmpeg binary not found", goerr.T(types.ErrTagEnvironment))

// PrepareRun builds the layout for one run: it creates the output directory
// (idempotent), verifies the ffmpeg binary exists, and derives the per-run
// log path. The directory is created before the ffmpeg check, so a missing
// binary can leave an empty output directory behind; that ordering is part
// of the contract.
func PrepareRun(ctx context.Context, outputDir, ffmpegPath string) (*model.RunContext, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create output directory",
			goerr.T(types.ErrTagEnvironment),
			goerr.V("dir", outputDir),
		)
	}

	if _, err := os.Stat(ffmpegPath); err != nil {
		return nil, goerr.Wrap(ErrFFmpegNotFound, "place the ffmpeg binary next to the program or pass --ffmpeg",
			goerr.T(types.ErrTagEnvironment),
			goerr.V("expected", ffmpegPath),
		)
	}

	runCtx := model.NewRunContext(outputDir, ffmpegPath, time.Now())

	logger.Debug("Prepared run context",
		"run_id", runCtx.ID,
		"output_dir", runCtx.OutputDir,
		"log_path", runCtx.LogPath,
		"ffmpeg", runCtx.FFmpegPath,
	)

	return runCtx, nil
}
