package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// Profile is an optional TOML file carrying download overrides. Pointer
// fields distinguish "not set" from an explicit false.
type Profile struct {
	Format            string `toml:"format"`
	Container         string `toml:"container"`
	Retries           *int   `toml:"retries"`
	FragmentRetries   *int   `toml:"fragment_retries"`
	Proxy             string `toml:"proxy"`
	WriteThumbnail    *bool  `toml:"write_thumbnail"`
	WriteInfoJSON     *bool  `toml:"write_info_json"`
	EmbedThumbnail    *bool  `toml:"embed_thumbnail"`
	RestrictFilenames *bool  `toml:"restrict_filenames"`
}

// LoadProfile reads and parses a profile file
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read profile", goerr.V("path", path))
	}

	var profile Profile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(err, "failed to parse profile", goerr.V("path", path))
	}

	return &profile, nil
}
