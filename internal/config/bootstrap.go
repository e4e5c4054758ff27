package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig makes sure a config file exists in the data dir, writing
// the shipped defaults (dictionaries included) on first run so operators can
// edit them in place.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	b, err := yaml.Marshal(Default())
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}

// OverlayAreas merges a local area gazetteer file into the parser config.
// A missing file is not an error; deployments outside the default city drop
// in their own areas.yml.
func OverlayAreas(cfg *Config, areasPath string) error {
	b, err := os.ReadFile(areasPath)
	if err != nil {
		return nil
	}

	var af struct {
		Areas []string `yaml:"areas"`
	}
	if err := yaml.Unmarshal(b, &af); err != nil {
		return err
	}
	if len(af.Areas) > 0 {
		cfg.Parser.Areas = af.Areas
	}
	return nil
}
