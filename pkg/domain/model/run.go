package model

import (
	"path/filepath"
	"time"

	"github.com/m-mizutani/ytrip/pkg/domain/types"
)

// RunContext holds the per-invocation layout: where downloads go, where the
// run log lives, and which ffmpeg binary the engine should use. It is built
// once at startup and never mutated.
type RunContext struct {
	ID         types.RunID
	StartedAt  time.Time
	OutputDir  string // Root directory for downloaded files
	LogPath    string // Per-run log file under OutputDir
	FFmpegPath string // ffmpeg binary handed to the engine
}

// NewRunContext derives the run layout from the output directory and the
// start time. The log file name embeds the start time at second resolution;
// two runs started within the same second share a log file (accepted, the
// logger appends).
func NewRunContext(outputDir, ffmpegPath string, startedAt time.Time) *RunContext {
	logName := "download_" + startedAt.Format("20060102_150405") + ".log"

	return &RunContext{
		ID:         types.NewRunID(),
		StartedAt:  startedAt,
		OutputDir:  outputDir,
		LogPath:    filepath.Join(outputDir, logName),
		FFmpegPath: ffmpegPath,
	}
}
