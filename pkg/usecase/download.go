package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytrip/pkg/domain/interfaces"
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
)

type downloadUseCase struct {
	engine    interfaces.Engine
	runLogger interfaces.RunLogger
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(engine interfaces.Engine, runLogger interfaces.RunLogger) interfaces.DownloadUseCase {
	return &downloadUseCase{
		engine:    engine,
		runLogger: runLogger,
	}
}

// Execute validates the URL and delegates one download to the extraction
// engine. A non-zero engine exit code comes back as a result, not as an
// error: the engine already reported the failure through its own output,
// and the caller only needs the code for the summary line.
func (uc *downloadUseCase) Execute(ctx context.Context, runCtx *model.RunContext, opts model.DownloadOptions, url string) (*model.DownloadResult, error) {
	logger := ctxlog.From(ctx)

	kind := model.ClassifyURL(url)
	if kind == model.URLKindUnknown {
		return nil, goerr.New("unsupported URL",
			goerr.T(types.ErrTagInvalidInput),
			goerr.V("url", url),
		)
	}

	logger.Info("Starting download",
		"run_id", runCtx.ID,
		"url", url,
		"kind", kind,
		"output_dir", runCtx.OutputDir,
	)

	// First line of the run log; also guarantees the log file exists even
	// if the engine produces no output at all.
	uc.runLogger.Debug(fmt.Sprintf("Starting download: %s", url))

	result, err := uc.engine.Download(ctx, opts, url)
	if err != nil {
		uc.runLogger.Error(fmt.Sprintf("Extraction engine could not run: %v", err))
		return nil, goerr.Wrap(err, "extraction engine failed to run", goerr.V("url", url))
	}

	if result.Succeeded() {
		logger.Info("Download finished",
			"run_id", runCtx.ID,
			"exit_code", result.ExitCode,
			"files", len(result.Files),
			"elapsed", result.Elapsed,
		)
	} else {
		logger.Warn("Download finished with engine errors",
			"run_id", runCtx.ID,
			"exit_code", result.ExitCode,
			"elapsed", result.Elapsed,
		)
	}

	return result, nil
}
