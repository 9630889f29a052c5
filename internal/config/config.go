// Package config loads .treport.yaml defaults. Flags always win; the file
// only moves the starting point.
package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the tool defaults a user can pin in .treport.yaml.
type Config struct {
	Format         string `yaml:"format"`          // auto, terminal, llm, json
	Theme          string `yaml:"theme"`           // default, mono
	TimeoutSeconds int    `yaml:"timeout_seconds"` // report download timeout
	Insecure       bool   `yaml:"insecure"`        // skip TLS verification
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Format:         "auto",
		Theme:          "default",
		TimeoutSeconds: 30,
	}
}

// Load returns the defaults merged with the first config file found:
// ./.treport.yaml, then <user config dir>/treport/config.yaml. A missing
// file is normal; an unreadable or invalid one is logged and ignored.
func Load() Config {
	cfg := Default()
	path := configPath()
	if path == "" {
		return cfg
	}
	loaded, err := fromFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("ignoring config file")
		return cfg
	}
	return merge(cfg, loaded)
}

func fromFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func merge(base, over Config) Config {
	if over.Format != "" {
		base.Format = over.Format
	}
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	if over.TimeoutSeconds > 0 {
		base.TimeoutSeconds = over.TimeoutSeconds
	}
	if over.Insecure {
		base.Insecure = true
	}
	return base
}

func configPath() string {
	local := ".treport.yaml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdg := filepath.Join(configHome, "treport", "config.yaml")
	if _, err := os.Stat(xdg); err == nil {
		return xdg
	}
	return ""
}
