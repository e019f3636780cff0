package interfaces

//go:generate moq -out mocks/usecase_mock.go -pkg mocks . DownloadUseCase

import (
	"context"

	"github.com/m-mizutani/ytrip/pkg/domain/model"
)

// DownloadUseCase defines the interface for one download run
type DownloadUseCase interface {
	// Execute validates the URL and delegates it to the extraction engine.
	// The returned result carries the engine's exit code; a non-zero code
	// is not mapped to an error.
	Execute(ctx context.Context, runCtx *model.RunContext, opts model.DownloadOptions, url string) (*model.DownloadResult, error)
}
