/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable tool configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
// Game content (world, events, effects) is not configured here; it lives in the TOML files
// under the assets directory.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GameConfig struct {
	AssetsDir string `yaml:"assets_dir"` // root holding config/*.toml and world/*.toml
	SaveSlot  int    `yaml:"save_slot"`
}

type StorageConfig struct {
	Dir string `yaml:"dir"` // empty: "saves" next to the config file
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Game          GameConfig    `yaml:"game"`
	Storage       StorageConfig `yaml:"storage"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Game:          GameConfig{AssetsDir: ".", SaveSlot: 1},
		Storage:       StorageConfig{Dir: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile = "KQ_CONFIG"
	EnvAssetsDir  = "KQ_ASSETS_DIR"
	EnvSaveSlot   = "KQ_SAVE_SLOT"
	EnvSaveDir    = "KQ_SAVE_DIR"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "KQ_LOG_LEVEL"
	EnvLogFormat = "KQ_LOG_FORMAT"
	EnvLogSource = "KQ_LOG_SOURCE"
	EnvLogFile   = "KQ_LOG_FILE"
)

// ConfigPath returns the per-user config file path. KQ_CONFIG overrides it.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "KinzaQuest")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "KinzaQuest")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "kinzaquest")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "kinzaquest")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an error;
// a file that exists but does not parse is.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML to path.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SaveDir resolves where save data lives.
func (c AppConfig) SaveDir() (string, error) {
	if d := strings.TrimSpace(c.Storage.Dir); d != "" {
		return d, nil
	}
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "saves"), nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Game.AssetsDir) != "" {
		dst.Game.AssetsDir = strings.TrimSpace(src.Game.AssetsDir)
	}
	if src.Game.SaveSlot > 0 {
		dst.Game.SaveSlot = src.Game.SaveSlot
	}
	if strings.TrimSpace(src.Storage.Dir) != "" {
		dst.Storage.Dir = strings.TrimSpace(src.Storage.Dir)
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAssetsDir)); v != "" {
		cfg.Game.AssetsDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSaveSlot)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Game.SaveSlot = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvSaveDir)); v != "" {
		cfg.Storage.Dir = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"game.assets_dir": EnvAssetsDir,
		"game.save_slot":  EnvSaveSlot,
		"storage.dir":     EnvSaveDir,
		"logging.level":   EnvLogLevel,
		"logging.format":  EnvLogFormat,
		"logging.source":  EnvLogSource,
		"logging.file":    EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
