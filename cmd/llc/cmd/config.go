package cmd

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional .llcrc.yaml file read from the current directory.
// It is CLI-only configuration; the core compiler never reads it and has
// no notion of environment or persisted state (spec.md §6).
type Config struct {
	Color *bool `yaml:"color"`
}

const configFileName = ".llcrc.yaml"

// LoadConfig reads ./.llcrc.yaml if present. A missing file is not an
// error; a malformed one is.
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(configFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
