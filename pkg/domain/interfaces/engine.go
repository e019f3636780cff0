package interfaces

import (
	"context"

	"github.com/m-mizutani/ytrip/pkg/domain/model"
)

// Engine defines the extraction engine boundary. The engine owns protocol
// negotiation, stream selection, fragment retry, muxing, and thumbnail and
// metadata persistence; this program only hands it a configuration record
// and one URL.
type Engine interface {
	// Download runs the engine for a single URL. A non-zero exit code in
	// the result means the engine ran and reported failure; a non-nil
	// error means the engine could not be run at all.
	Download(ctx context.Context, opts model.DownloadOptions, url string) (*model.DownloadResult, error)
}

// RunLogger mirrors severity-tagged lines to the console and the per-run
// log file. Write failures are swallowed: losing a log line must not abort
// a download.
type RunLogger interface {
	Debug(msg string)
	Warning(msg string)
	Error(msg string)
}
