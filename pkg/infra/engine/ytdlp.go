package engine

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytrip/pkg/domain/interfaces"
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
)

// ProgressSink consumes byte-level progress updates from the engine
type ProgressSink interface {
	Update(total, current int64, prefix string)
	Finish()
}

// Client drives the yt-dlp binary through go-ytdlp. All engine API usage
// lives in this package; the rest of the program only sees the Engine
// interface.
type Client struct {
	runLogger interfaces.RunLogger
	progress  ProgressSink
}

var _ interfaces.Engine = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithRunLogger mirrors engine output lines through the given run logger
func WithRunLogger(logger interfaces.RunLogger) Option {
	return func(c *Client) {
		c.runLogger = logger
	}
}

// WithProgress feeds download progress into the given sink
func WithProgress(sink ProgressSink) Option {
	return func(c *Client) {
		c.progress = sink
	}
}

// New creates an engine client
func New(options ...Option) *Client {
	client := &Client{}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// Download runs yt-dlp for a single URL. The engine owns all retry and
// format logic; the returned result only carries its exit code and the
// files it reported. A non-zero exit code is a result, not an error.
func (c *Client) Download(ctx context.Context, opts model.DownloadOptions, url string) (*model.DownloadResult, error) {
	// Provision the yt-dlp binary on first use. This runs only after the
	// caller's preconditions (URL shape, ffmpeg presence) have passed, so
	// a broken environment never triggers network activity.
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return nil, goerr.Wrap(err, "failed to provision yt-dlp",
			goerr.T(types.ErrTagEnvironment))
	}

	cmd := c.build(opts)

	startedAt := time.Now()
	result, err := cmd.Run(ctx, url)
	elapsed := time.Since(startedAt)

	if c.progress != nil {
		c.progress.Finish()
	}

	if result == nil {
		return nil, goerr.Wrap(err, "failed to invoke yt-dlp",
			goerr.T(types.ErrTagEngine),
			goerr.V("url", url),
		)
	}

	MirrorOutput(c.runLogger, result.OutputLogs)

	exitCode := result.ExitCode
	if exitCode == 0 && err != nil {
		// The run failed without a usable code; surface it as non-zero
		// so the summary does not claim success.
		exitCode = 1
	}

	return &model.DownloadResult{
		ExitCode: exitCode,
		Files:    extractedFiles(result),
		Elapsed:  elapsed,
	}, nil
}

// build translates the configuration record into a yt-dlp command
func (c *Client) build(opts model.DownloadOptions) *ytdlp.Command {
	cmd := ytdlp.New().
		Format(opts.Format).
		MergeOutputFormat(opts.Container).
		Output(opts.OutputTemplate).
		Retries(strconv.Itoa(opts.Retries)).
		FragmentRetries(strconv.Itoa(opts.FragmentRetries))

	if opts.WriteThumbnail {
		cmd = cmd.WriteThumbnail()
	}
	if opts.WriteInfoJSON {
		cmd = cmd.WriteInfoJSON()
	}
	if opts.EmbedThumbnail {
		cmd = cmd.EmbedThumbnail()
	}
	if opts.RestrictFilenames {
		cmd = cmd.RestrictFilenames()
	}
	if opts.ForceOverwrites {
		cmd = cmd.ForceOverwrites()
	}
	if opts.NoContinue {
		cmd = cmd.NoContinue()
	}
	if opts.IgnoreErrors {
		cmd = cmd.IgnoreErrors()
	}
	if opts.FFmpegPath != "" {
		cmd = cmd.FFmpegLocation(opts.FFmpegPath)
	}
	if opts.Proxy != "" {
		cmd = cmd.Proxy(opts.Proxy)
	}

	if c.progress != nil {
		cmd.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			title := ""
			if update.Info != nil && update.Info.Title != nil {
				title = *update.Info.Title
			}
			c.progress.Update(int64(update.TotalBytes), int64(update.DownloadedBytes), title)
		})
	}

	return cmd
}

// MirrorOutput replays captured engine output through the run logger in
// timestamp order. Stdout lines are diagnostics; stderr lines carry the
// engine's own severity prefix.
func MirrorOutput(logger interfaces.RunLogger, logs []*ytdlp.ResultLog) {
	if logger == nil || len(logs) == 0 {
		return
	}

	ordered := make([]*ytdlp.ResultLog, 0, len(logs))
	for _, entry := range logs {
		if entry != nil {
			ordered = append(ordered, entry)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	for _, entry := range ordered {
		if entry.Pipe != "stderr" {
			logger.Debug(entry.Line)
			continue
		}
		switch {
		case strings.HasPrefix(entry.Line, "ERROR"):
			logger.Error(entry.Line)
		case strings.HasPrefix(entry.Line, "WARNING"):
			logger.Warning(entry.Line)
		default:
			logger.Debug(entry.Line)
		}
	}
}

func extractedFiles(result *ytdlp.Result) []string {
	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil
	}

	var files []string
	for _, item := range info {
		if item == nil || item.Filename == nil || *item.Filename == "" {
			continue
		}
		files = append(files, *item.Filename)
	}
	return files
}
