package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ytrip/pkg/cli/config"
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func neverSet(string) bool { return false }

func buildOptions(t *testing.T, cfg *config.Download, isSet func(string) bool) model.DownloadOptions {
	t.Helper()
	overrides := gt.R1(cfg.Options(isSet)).NoError(t)
	runCtx := model.NewRunContext("/tmp/out", "/tmp/ffmpeg", time.Now())
	return model.NewDownloadOptions(runCtx, overrides...)
}

func TestDownload_Flags(t *testing.T) {
	var cfg config.Download
	cmd := &cli.Command{
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return nil
		},
	}

	gt.NoError(t, cmd.Run(context.Background(), []string{
		"ytrip",
		"--format", "best",
		"--retries", "3",
		"--fragment-retries", "5",
	}))

	gt.Equal(t, cfg.Format, "best")
	gt.Equal(t, cfg.Retries, 3)
	gt.Equal(t, cfg.FragmentRetries, 5)

	// Unset flags land their declared defaults in the destinations.
	gt.Equal(t, cfg.Container, model.DefaultContainer)
	gt.Equal(t, cfg.Proxy, "")
}

func TestDownload_Options_Defaults(t *testing.T) {
	cfg := &config.Download{
		Format:          model.DefaultFormat,
		Container:       model.DefaultContainer,
		Retries:         model.DefaultRetries,
		FragmentRetries: model.DefaultFragmentRetries,
	}

	opts := buildOptions(t, cfg, neverSet)

	gt.Equal(t, opts.Format, "bv*+ba/best")
	gt.Equal(t, opts.Container, "mp4")
	gt.Equal(t, opts.Retries, 10)
	gt.Equal(t, opts.FragmentRetries, 10)
	gt.Equal(t, opts.Proxy, "")
	gt.True(t, opts.WriteThumbnail)
	gt.True(t, opts.EmbedThumbnail)
}

func TestDownload_Options_ProfileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.toml")
	profile := `
format = "best"
container = "mkv"
retries = 2
fragment_retries = 4
proxy = "socks5://127.0.0.1:1080"
embed_thumbnail = false
write_info_json = false
`
	gt.NoError(t, os.WriteFile(profilePath, []byte(profile), 0644))

	cfg := &config.Download{
		Format:          model.DefaultFormat,
		Container:       model.DefaultContainer,
		Retries:         model.DefaultRetries,
		FragmentRetries: model.DefaultFragmentRetries,
		ProfilePath:     profilePath,
	}

	opts := buildOptions(t, cfg, neverSet)

	gt.Equal(t, opts.Format, "best")
	gt.Equal(t, opts.Container, "mkv")
	gt.Equal(t, opts.Retries, 2)
	gt.Equal(t, opts.FragmentRetries, 4)
	gt.Equal(t, opts.Proxy, "socks5://127.0.0.1:1080")
	gt.Equal(t, opts.EmbedThumbnail, false)
	gt.Equal(t, opts.WriteInfoJSON, false)

	// Untouched toggles keep their defaults
	gt.True(t, opts.WriteThumbnail)
	gt.True(t, opts.RestrictFilenames)
}

func TestDownload_Options_ExplicitFlagBeatsProfile(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.toml")
	gt.NoError(t, os.WriteFile(profilePath, []byte(`format = "best"`+"\n"+`retries = 2`+"\n"), 0644))

	cfg := &config.Download{
		Format:          "bv*+ba",
		Container:       model.DefaultContainer,
		Retries:         7,
		FragmentRetries: model.DefaultFragmentRetries,
		ProfilePath:     profilePath,
	}

	// The user passed --format and --retries explicitly
	explicitlySet := func(name string) bool {
		return name == "format" || name == "retries"
	}

	opts := buildOptions(t, cfg, explicitlySet)

	gt.Equal(t, opts.Format, "bv*+ba")
	gt.Equal(t, opts.Retries, 7)
}

func TestDownload_Options_MissingProfile(t *testing.T) {
	cfg := &config.Download{
		Format:      model.DefaultFormat,
		ProfilePath: "/no/such/profile.toml",
	}

	_, err := cfg.Options(neverSet)
	gt.Error(t, err)
}

func TestLoadProfile_ParseError(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "broken.toml")
	gt.NoError(t, os.WriteFile(profilePath, []byte("format = [unclosed"), 0644))

	_, err := config.LoadProfile(profilePath)
	gt.Error(t, err)
}

func TestLoadProfile_PointerFieldsDistinguishUnset(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "partial.toml")
	gt.NoError(t, os.WriteFile(profilePath, []byte(`write_thumbnail = false`+"\n"), 0644))

	profile := gt.R1(config.LoadProfile(profilePath)).NoError(t)

	gt.NotNil(t, profile.WriteThumbnail)
	gt.Equal(t, *profile.WriteThumbnail, false)
	gt.Nil(t, profile.EmbedThumbnail)
	gt.Nil(t, profile.Retries)
}
