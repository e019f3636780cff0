package config

import (
	"github.com/m-mizutani/ytrip/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Download holds the engine tunables exposed on the command line. The
// boolean toggles (thumbnail, metadata, filename restriction) are fixed
// defaults adjustable only through a profile file.
type Download struct {
	Format          string
	Container       string
	Retries         int
	FragmentRetries int
	Proxy           string
	ProfilePath     string
}

// Flags returns CLI flags for download configuration
func (c *Download) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Format selector passed to the engine",
			Value:       model.DefaultFormat,
			Destination: &c.Format,
			Sources:     cli.EnvVars("YTRIP_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "container",
			Usage:       "Merge container for the final file",
			Value:       model.DefaultContainer,
			Destination: &c.Container,
			Sources:     cli.EnvVars("YTRIP_CONTAINER"),
		},
		&cli.IntFlag{
			Name:        "retries",
			Usage:       "Whole-file retry count",
			Value:       model.DefaultRetries,
			Destination: &c.Retries,
			Sources:     cli.EnvVars("YTRIP_RETRIES"),
		},
		&cli.IntFlag{
			Name:        "fragment-retries",
			Usage:       "Per-fragment retry count",
			Value:       model.DefaultFragmentRetries,
			Destination: &c.FragmentRetries,
			Sources:     cli.EnvVars("YTRIP_FRAGMENT_RETRIES"),
		},
		&cli.StringFlag{
			Name:        "proxy",
			Usage:       "Proxy URL for engine traffic (may embed credentials; redacted in logs)",
			Destination: &c.Proxy,
			Sources:     cli.EnvVars("YTRIP_PROXY"),
		},
		&cli.StringFlag{
			Name:        "profile",
			Usage:       "Path to a TOML profile overriding download defaults",
			Destination: &c.ProfilePath,
			Sources:     cli.EnvVars("YTRIP_PROFILE"),
		},
	}
}

// Options merges the optional profile under the explicitly set flags and
// returns the per-run engine overrides. Precedence: built-in defaults,
// then profile values, then flags or environment variables the user set.
func (c *Download) Options(isSet func(name string) bool) ([]model.DownloadOption, error) {
	format := c.Format
	container := c.Container
	retries := c.Retries
	fragmentRetries := c.FragmentRetries
	proxy := c.Proxy

	var opts []model.DownloadOption

	if c.ProfilePath != "" {
		profile, err := LoadProfile(c.ProfilePath)
		if err != nil {
			return nil, err
		}

		if profile.Format != "" && !isSet("format") {
			format = profile.Format
		}
		if profile.Container != "" && !isSet("container") {
			container = profile.Container
		}
		if profile.Retries != nil && !isSet("retries") {
			retries = *profile.Retries
		}
		if profile.FragmentRetries != nil && !isSet("fragment-retries") {
			fragmentRetries = *profile.FragmentRetries
		}
		if profile.Proxy != "" && !isSet("proxy") {
			proxy = profile.Proxy
		}

		if profile.WriteThumbnail != nil {
			opts = append(opts, model.WithWriteThumbnail(*profile.WriteThumbnail))
		}
		if profile.WriteInfoJSON != nil {
			opts = append(opts, model.WithWriteInfoJSON(*profile.WriteInfoJSON))
		}
		if profile.EmbedThumbnail != nil {
			opts = append(opts, model.WithEmbedThumbnail(*profile.EmbedThumbnail))
		}
		if profile.RestrictFilenames != nil {
			opts = append(opts, model.WithRestrictFilenames(*profile.RestrictFilenames))
		}
	}

	opts = append(opts,
		model.WithFormat(format),
		model.WithContainer(container),
		model.WithRetries(retries),
		model.WithFragmentRetries(fragmentRetries),
	)
	if proxy != "" {
		opts = append(opts, model.WithProxy(proxy))
	}

	return opts, nil
}
