// Package config holds the settings of the converter and the lookup server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	isv "github.com/bt2901/interslavic-utils"
)

// Config is the root configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// ConvertConfig locates the input and output files of a conversion.
type ConvertConfig struct {
	SourcePath  string `yaml:"source"   env:"ISV_SOURCE"   env-default:"isv_words.tsv"`
	MappingPath string `yaml:"mapping"  env:"ISV_MAPPING"  env-default:"mapping_isv.csv"`
	OutputPath  string `yaml:"output"   env:"ISV_OUTPUT"   env-default:"dict.opcorpora.xml"`
	Version     string `yaml:"version"  env:"ISV_VERSION"  env-default:"0.2"`
	Revision    string `yaml:"revision" env:"ISV_REVISION" env-default:"1"`
	// Merge is "overwrite" or "union".
	Merge string `yaml:"merge" env:"ISV_MERGE" env-default:"overwrite"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// ServerConfig holds lookup server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" env:"SERVER_ADDR" env-default:":8080"`
	// AllowedOrigins is a comma-separated CORS origin list.
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads configuration from a YAML file when path is set, else from the
// environment. Priority: ENV > YAML > defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	if _, err := isv.ParseMergePolicy(c.Convert.Merge); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.Log.Format)
	}
	return nil
}

// MergePolicy returns the parsed merge policy.
func (c ConvertConfig) MergePolicy() isv.MergePolicy {
	m, _ := isv.ParseMergePolicy(c.Merge)
	return m
}

// Origins splits AllowedOrigins.
func (s ServerConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(s.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
