package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional project file, `sunder.yaml`, sitting alongside
// a module's entry point. It supplements (never replaces) the environment
// search path: entries here are tried after the entry module's own
// directory and before SUNDER_IMPORT_PATH, letting a project pin its
// dependency layout without exporting a shell variable.
type Manifest struct {
	// Name is an informational project name, surfaced in diagnostics and
	// build logs only.
	Name string `yaml:"name"`

	// ImportPath lists additional module search directories, relative to
	// the manifest's own directory unless absolute.
	ImportPath []string `yaml:"import_path"`

	// Entry names the project's entry module. It is parsed but not read by
	// the driver, which always takes the entry module from the command
	// line.
	Entry string `yaml:"entry"`
}

// LoadManifest reads and parses a sunder.yaml at path. A missing file is
// not an error — it returns a zero-value Manifest and ok=false, so callers
// fall back to environment/flag configuration.
func LoadManifest(path string) (Manifest, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return m, true, nil
}
