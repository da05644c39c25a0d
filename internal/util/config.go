// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 TrustCampus Authors

package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CertificateConfig holds the parameters of issued credential assets.
type CertificateConfig struct {
	AssetName string `yaml:"asset_name" description:"Name of every minted credential asset" default:"TrustCampus Cert"`
	UnitName  string `yaml:"unit_name" description:"Unit name of minted credential assets" default:"TCC"`
	URLPrefix string `yaml:"url_prefix" description:"Prefix joined with the metadata hash to form the asset URL" default:"ipfs://"`
}

// Config holds tcshell configuration settings
type Config struct {
	// StorePath is the SQLite ledger file, relative to the data directory.
	// Empty keeps the ledger in memory only.
	StorePath string `yaml:"store_path" description:"SQLite ledger file (relative to data dir, empty = in-memory)" default:"ledger.db"`

	Certificate CertificateConfig `yaml:"certificate" description:"Credential asset parameters"`

	// Aliases maps short names to account addresses for scripts and the REPL.
	Aliases map[string]string `yaml:"aliases" description:"Account aliases (name -> address)"`

	WatchDebounceMs int `yaml:"watch_debounce_ms" description:"Delay before re-running a watched script" default:"300"`
}

// Asset parameter limits, mirrored from the ledger's checks.
const (
	maxAssetNameLen = 32
	maxUnitNameLen  = 8
)

// DefaultConfig returns the default configuration for runtime use.
func DefaultConfig() Config {
	return Config{
		StorePath: "ledger.db",
		Certificate: CertificateConfig{
			AssetName: "TrustCampus Cert",
			UnitName:  "TCC",
			URLPrefix: "ipfs://",
		},
		Aliases:         map[string]string{},
		WatchDebounceMs: 300,
	}
}

// DefaultDataDir is the default data directory for tcshell
const DefaultDataDir = "~/.tcshell"

// GetDataDir returns the data directory.
// Resolution order: -d flag > TCSHELL_DATA env var > ~/.tcshell
func GetDataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envDir := os.Getenv("TCSHELL_DATA"); envDir != "" {
		return envDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "" // Can't determine default
	}
	return filepath.Join(home, ".tcshell")
}

// GetConfigPath returns the path to the config file in the data directory.
// Returns empty string if dataDir is empty.
func GetConfigPath(dataDir string) string {
	if dataDir == "" {
		return ""
	}
	return filepath.Join(dataDir, "config.yaml")
}

// ResolvePath resolves a relative path against baseDir.
// Absolute paths and empty inputs are returned unchanged.
func ResolvePath(path, baseDir string) string {
	if path == "" || baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// LoadConfig loads configuration from config.yaml in the data directory.
// If dataDir is empty or the file doesn't exist, returns default config.
// A relative store path is resolved against the data directory.
func LoadConfig(dataDir string) (Config, error) {
	config, err := LoadConfigFromPath(GetConfigPath(dataDir))
	if err != nil {
		return config, err
	}
	config.StorePath = ResolvePath(config.StorePath, dataDir)
	return config, nil
}

// LoadConfigFromPath loads configuration from the specified path.
// If path is empty or the file doesn't exist, returns default config.
func LoadConfigFromPath(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay config file values
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks value ranges and fills in defaults for zero values.
func (c *Config) Validate() error {
	defaults := DefaultConfig()
	if c.Certificate.AssetName == "" {
		c.Certificate.AssetName = defaults.Certificate.AssetName
	}
	if c.Certificate.UnitName == "" {
		c.Certificate.UnitName = defaults.Certificate.UnitName
	}
	if len(c.Certificate.AssetName) > maxAssetNameLen {
		return fmt.Errorf("certificate.asset_name '%s' is longer than %d bytes", c.Certificate.AssetName, maxAssetNameLen)
	}
	if len(c.Certificate.UnitName) > maxUnitNameLen {
		return fmt.Errorf("certificate.unit_name '%s' is longer than %d bytes", c.Certificate.UnitName, maxUnitNameLen)
	}
	if c.WatchDebounceMs < 0 {
		return fmt.Errorf("watch_debounce_ms must not be negative (got %d)", c.WatchDebounceMs)
	}
	if c.WatchDebounceMs == 0 {
		c.WatchDebounceMs = defaults.WatchDebounceMs
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
	for name, addr := range c.Aliases {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("alias with empty name points to %s", addr)
		}
		normalized, err := NormalizeAddress(addr)
		if err != nil {
			return fmt.Errorf("alias '%s': %w", name, err)
		}
		c.Aliases[name] = normalized
	}
	return nil
}
