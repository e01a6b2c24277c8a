package config

// URI aliases let users name backends once and refer to them on every
// command line: an aliases.yaml mapping short names to full URIs.

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// aliasFile is the on-disk shape of aliases.yaml.
type aliasFile struct {
	Aliases map[string]string `yaml:"aliases"`
}

// LoadAliases reads every alias file on the search path and merges
// them, later files overriding earlier ones. A missing file is not an
// error; a malformed one is.
func LoadAliases() (map[string]string, error) {
	merged := make(map[string]string)

	for _, path := range AliasSearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		var f aliasFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		for name, uri := range f.Aliases {
			merged[name] = uri
		}
		slog.Debug("loaded aliases", "file", path, "count", len(f.Aliases))
	}

	return merged, nil
}
