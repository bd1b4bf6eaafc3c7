// Package config loads .jtol.yaml defaults for the command-line front end.
// Explicit flags always win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File holds the defaults a user can persist in .jtol.yaml.
type File struct {
	Prefix             string `yaml:"prefix,omitempty"`
	Multi              int    `yaml:"multi"`
	SuppressDuplicates bool   `yaml:"suppress_duplicates"`
	Compact            bool   `yaml:"compact"`
	Quiet              bool   `yaml:"quiet"`
	Theme              string `yaml:"theme,omitempty"`
}

const fileName = ".jtol.yaml"

// Load reads the configuration file, if any. A missing file yields zero
// defaults; a malformed file is reported as a warning on stderr and
// otherwise ignored.
func Load() *File {
	cfg := &File{}

	path := configPath()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: reading config file %s: %v. Using defaults.\n", path, err)
		}
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unmarshalling config file %s: %v. Using defaults.\n", path, err)
		return &File{}
	}
	return cfg
}

// configPath checks the working directory first, then the user config dir
// (XDG on Linux), returning "" when no config file exists.
func configPath() string {
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	path := filepath.Join(configHome, "jtol", fileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
