// Package config reads dreams settings from a .dreams file and DREAMS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/dreams/pkg/enrich"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DREAMS_PATH.
	EnvPrefix = "DREAMS"
	// PathOverrideEnv names an extra directory searched for the config file.
	PathOverrideEnv = "DREAMS_CONFIG_PATH"

	fileName = ".dreams" // .yaml is implicit

	DefaultPath     = "~/.dreams.db"
	DefaultLogLevel = "info"
)

// Config is the resolved configuration.
type Config struct {
	Path     string `json:"path" yaml:"path"`
	LogFile  string `json:"logFile,omitempty" yaml:"logFile,omitempty"`
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	Provider string `json:"provider" yaml:"provider"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey   string `json:"-" yaml:"-"`
	BaseURL  string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// Source is the config file that was read, empty when none was found.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// BasePath is the storage directory.
func (c *Config) BasePath() string {
	return c.Path
}

// Enrich returns the backend selection for the enrichment service.
func (c *Config) Enrich() (enrich.Config, error) {
	p, err := enrich.ParseProvider(c.Provider)
	if err != nil {
		return enrich.Config{}, err
	}
	return enrich.Config{
		Provider: p,
		Model:    c.Model,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
	}, nil
}

// Load walks the config search path, applies environment overrides and
// defaults, and expands ~ in the storage path.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("enrich.provider", string(enrich.ProviderNone))
	v.SetDefault("enrich.model", "")
	v.SetDefault("enrich.api_key", "")
	v.SetDefault("enrich.base_url", "")

	v.SetConfigName(fileName)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(PathOverrideEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("config: expand path: %w", err)
	}

	return &Config{
		Path:     path,
		LogFile:  v.GetString("log.file"),
		LogLevel: v.GetString("log.level"),
		Provider: v.GetString("enrich.provider"),
		Model:    v.GetString("enrich.model"),
		APIKey:   v.GetString("enrich.api_key"),
		BaseURL:  v.GetString("enrich.base_url"),
		Source:   v.ConfigFileUsed(),
	}, nil
}
