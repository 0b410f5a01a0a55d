// Package config loads the CLI's optional .skimpyrc.yaml, the way the
// teacher's CLI otherwise takes every toggle from flags alone — here a
// handful of common ones get a persisted default.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds default CLI toggles, overridable by explicit flags.
type Config struct {
	Trace     bool `yaml:"trace"`
	DumpAST   bool `yaml:"dumpAST"`
	NoPrelude bool `yaml:"noPrelude"`
}

// fileName is the config file's name, searched for in the current
// working directory first, then the user's home directory.
const fileName = ".skimpyrc.yaml"

// Load reads .skimpyrc.yaml from the current directory or, failing
// that, the user's home directory. A missing file is not an error:
// Load returns the zero Config.
func Load() (Config, error) {
	var cfg Config

	for _, dir := range searchDirs() {
		path := filepath.Join(dir, fileName)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func searchDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}
