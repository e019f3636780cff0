package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytrip/pkg/domain/types"
	"github.com/m-mizutani/ytrip/pkg/usecase"
)

func writeFakeFFmpeg(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "ffmpeg")
	gt.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755))
	return path
}

func TestPrepareRun_CreatesLayout(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "Downloads")
	ffmpegPath := writeFakeFFmpeg(t, dir)

	runCtx := gt.R1(usecase.PrepareRun(context.Background(), outputDir, ffmpegPath)).NoError(t)

	info := gt.R1(os.Stat(outputDir)).NoError(t)
	gt.True(t, info.IsDir())

	gt.Equal(t, runCtx.OutputDir, outputDir)
	gt.Equal(t, runCtx.FFmpegPath, ffmpegPath)
	gt.Equal(t, filepath.Dir(runCtx.LogPath), outputDir)

	logName := regexp.MustCompile(`^download_\d{8}_\d{6}\.log$`)
	gt.True(t, logName.MatchString(filepath.Base(runCtx.LogPath)))
}

func TestPrepareRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "Downloads")
	ffmpegPath := writeFakeFFmpeg(t, dir)

	first := gt.R1(usecase.PrepareRun(context.Background(), outputDir, ffmpegPath)).NoError(t)

	// Drop a file into the populated directory; a second run must not care
	gt.NoError(t, os.WriteFile(filepath.Join(outputDir, "leftover.mp4"), []byte("x"), 0644))

	second := gt.R1(usecase.PrepareRun(context.Background(), outputDir, ffmpegPath)).NoError(t)
	gt.Equal(t, second.OutputDir, first.OutputDir)
	gt.Value(t, second.ID).NotEqual(first.ID)
}

func TestPrepareRun_MissingFFmpeg(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "Downloads")
	missing := filepath.Join(dir, "ffmpeg")

	_, err := usecase.PrepareRun(context.Background(), outputDir, missing)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, usecase.ErrFFmpegNotFound))
	gt.True(t, goerr.HasTag(err, types.ErrTagEnvironment))

	// The output directory is created before the binary check; the error
	// intentionally leaves it behind
	info := gt.R1(os.Stat(outputDir)).NoError(t)
	gt.True(t, info.IsDir())
}

func TestPrepareRun_UncreatableOutputDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	gt.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	_, err := usecase.PrepareRun(context.Background(), filepath.Join(blocker, "Downloads"), filepath.Join(dir, "ffmpeg"))
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagEnvironment))
}
