package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/tsinit/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised keys.
const (
	KeyLicense = "license"
	KeyES      = "es"
	KeyModule  = "module"
	KeyNPM     = "npm"
	KeyAuthor  = "author"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyLicense, KeyES, KeyModule, KeyNPM, KeyAuthor}

var v = viper.New()

// Defaults holds the user-level scaffolding defaults. Empty fields mean
// "use the built-in default".
type Defaults struct {
	License string
	ES      string
	Module  string
	NPM     string
	Author  string
}

// Dir returns the path to the config directory (~/.tsinit/).
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.tsinit/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	v = viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return v.GetString(key)
}

// Current returns the loaded defaults.
func Current() Defaults {
	return Defaults{
		License: Get(KeyLicense),
		ES:      Get(KeyES),
		Module:  Get(KeyModule),
		NPM:     Get(KeyNPM),
		Author:  Get(KeyAuthor),
	}
}

// IsKey reports whether key is one of the recognised config keys.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	v.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
