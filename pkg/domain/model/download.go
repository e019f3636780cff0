package model

import (
	"path/filepath"
	"time"
)

// Fixed tunables for the extraction engine. These mirror the documented
// defaults of the tool; anything not exposed as a flag or profile field is
// deliberately constant.
const (
	DefaultFormat          = "bv*+ba/best"
	DefaultContainer       = "mp4"
	DefaultRetries         = 10
	DefaultFragmentRetries = 10
)

// DownloadOptions is the full configuration record handed to the extraction
// engine for one run. It is constructed once via NewDownloadOptions and
// passed by value; nothing mutates it afterwards.
type DownloadOptions struct {
	Format            string
	Container         string
	OutputTemplate    string
	Retries           int
	FragmentRetries   int
	WriteThumbnail    bool
	WriteInfoJSON     bool
	EmbedThumbnail    bool
	RestrictFilenames bool
	ForceOverwrites   bool
	NoContinue        bool
	IgnoreErrors      bool
	FFmpegPath        string
	Proxy             string `masq:"secret"`
}

// DownloadOption overrides a single field of the default configuration
type DownloadOption func(*DownloadOptions)

// WithFormat overrides the format selector
func WithFormat(format string) DownloadOption {
	return func(o *DownloadOptions) {
		o.Format = format
	}
}

// WithContainer overrides the merge container
func WithContainer(container string) DownloadOption {
	return func(o *DownloadOptions) {
		o.Container = container
	}
}

// WithRetries overrides the whole-file retry count
func WithRetries(n int) DownloadOption {
	return func(o *DownloadOptions) {
		o.Retries = n
	}
}

// WithFragmentRetries overrides the per-fragment retry count
func WithFragmentRetries(n int) DownloadOption {
	return func(o *DownloadOptions) {
		o.FragmentRetries = n
	}
}

// WithProxy routes engine traffic through the given proxy URL
func WithProxy(proxy string) DownloadOption {
	return func(o *DownloadOptions) {
		o.Proxy = proxy
	}
}

// WithWriteThumbnail toggles saving the thumbnail image next to the video
func WithWriteThumbnail(v bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.WriteThumbnail = v
	}
}

// WithWriteInfoJSON toggles writing the metadata sidecar
func WithWriteInfoJSON(v bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.WriteInfoJSON = v
	}
}

// WithEmbedThumbnail toggles embedding the thumbnail into the container
func WithEmbedThumbnail(v bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.EmbedThumbnail = v
	}
}

// WithRestrictFilenames toggles conservative cross-filesystem file naming
func WithRestrictFilenames(v bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.RestrictFilenames = v
	}
}

// NewDownloadOptions builds the engine configuration for one run. Each video
// lands in its own subfolder under the run's output directory, named after
// the (possibly filename-restricted) title.
func NewDownloadOptions(runCtx *RunContext, options ...DownloadOption) DownloadOptions {
	opts := DownloadOptions{
		Format:            DefaultFormat,
		Container:         DefaultContainer,
		OutputTemplate:    filepath.Join(runCtx.OutputDir, "%(title)s", "%(title)s.%(ext)s"),
		Retries:           DefaultRetries,
		FragmentRetries:   DefaultFragmentRetries,
		WriteThumbnail:    true,
		WriteInfoJSON:     true,
		EmbedThumbnail:    true,
		RestrictFilenames: true,
		ForceOverwrites:   true,
		NoContinue:        true,
		IgnoreErrors:      true,
		FFmpegPath:        runCtx.FFmpegPath,
	}

	for _, opt := range options {
		opt(&opts)
	}

	return opts
}

// DownloadResult represents the outcome of one engine invocation
type DownloadResult struct {
	ExitCode int           // Engine result code; zero means success
	Files    []string      // Files the engine reported as downloaded
	Elapsed  time.Duration // Wall time spent inside the engine
}

// Succeeded reports whether the engine finished with a zero code
func (r *DownloadResult) Succeeded() bool {
	return r.ExitCode == 0
}
