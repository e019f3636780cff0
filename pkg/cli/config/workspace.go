package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Workspace holds the filesystem layout configuration. Empty values fall
// back to locations next to the program binary, matching the portable
// "drop the tool and ffmpeg in one folder" deployment.
type Workspace struct {
	OutputDir  string
	FFmpegPath string
}

// Flags returns CLI flags for workspace configuration
func (c *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Directory for downloaded files (default: Downloads next to the program)",
			Destination: &c.OutputDir,
			Sources:     cli.EnvVars("YTRIP_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:        "ffmpeg",
			Usage:       "Path to the ffmpeg binary (default: next to the program)",
			Destination: &c.FFmpegPath,
			Sources:     cli.EnvVars("YTRIP_FFMPEG"),
		},
	}
}

// Resolve fills in the executable-sibling defaults and returns the final
// output directory and ffmpeg path. It does not touch the filesystem
// beyond locating the running binary.
func (c *Workspace) Resolve() (outputDir, ffmpegPath string, err error) {
	outputDir = c.OutputDir
	ffmpegPath = c.FFmpegPath

	if outputDir == "" || ffmpegPath == "" {
		exePath, err := os.Executable()
		if err != nil {
			return "", "", goerr.Wrap(err, "failed to locate the program binary")
		}
		exeDir := filepath.Dir(exePath)

		if outputDir == "" {
			outputDir = filepath.Join(exeDir, "Downloads")
		}
		if ffmpegPath == "" {
			ffmpegPath = filepath.Join(exeDir, ffmpegBinaryName())
		}
	}

	return outputDir, ffmpegPath, nil
}

func ffmpegBinaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}
