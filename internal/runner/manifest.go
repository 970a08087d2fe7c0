package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Manifest describes one batch: which models answered, in TSV column
// order, and where the raw answer file lives. An empty input path means
// the answers were imported by an earlier run.
type Manifest struct {
	Models []string `yaml:"models"`
	Input  string   `yaml:"input"`
}

func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var m Manifest
	if err := yaml.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Models) == 0 {
		return nil, fmt.Errorf("manifest lists no models")
	}
	return &m, nil
}
