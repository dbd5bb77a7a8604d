// Package config loads process configuration from an optional file, the
// environment (HOUSEPRICE_*) and defaults.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/YuminosukeSato/houseprice/pipeline"
	"github.com/YuminosukeSato/houseprice/pkg/errors"
	"github.com/YuminosukeSato/houseprice/pkg/log"
)

// EnvPrefix is prepended to every environment variable, e.g.
// HOUSEPRICE_MODEL_PATH for model.path.
const EnvPrefix = "HOUSEPRICE"

// Frontend selects per-process defaults.
type Frontend string

const (
	FrontendAPI Frontend = "api"
	FrontendUI  Frontend = "webui"
)

// Configs is the typed configuration.
type Configs struct {
	App struct {
		Env string `mapstructure:"env"`
	} `mapstructure:"app"`

	Model struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"model"`

	HTTP struct {
		Addr            string        `mapstructure:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	Log struct {
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		File       string `mapstructure:"file"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
		MaxAgeDays int    `mapstructure:"max_age_days"`
	} `mapstructure:"log"`

	Locale         string `mapstructure:"locale"`
	CurrencySymbol string `mapstructure:"currency_symbol"`

	Cache struct {
		Size int `mapstructure:"size"`
	} `mapstructure:"cache"`
}

func setDefaults(v *viper.Viper, frontend Frontend) {
	v.SetDefault("app.env", "dev")
	v.SetDefault("model.path", pipeline.DefaultPath)
	if frontend == FrontendUI {
		v.SetDefault("http.addr", ":8501")
	} else {
		v.SetDefault("http.addr", ":8000")
	}
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("locale", "pt-BR")
	v.SetDefault("currency_symbol", "R$")
	v.SetDefault("cache.size", 0)
}

// Load builds the configuration for frontend. When file is empty,
// $HOUSEPRICE_CONFIG is used, then ./houseprice.{yaml,json,toml} if present.
func Load(frontend Frontend, file string) (*Configs, error) {
	v := viper.New()
	setDefaults(v, frontend)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		file = v.GetString("config")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	} else {
		v.SetConfigName("houseprice")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "read config file")
			}
		}
	}

	cfg := &Configs{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the processes cannot start with.
func (c *Configs) Validate() error {
	if c.Model.Path == "" {
		return errors.NewValidationError("model.path", "must not be empty", c.Model.Path)
	}
	if c.HTTP.Addr == "" {
		return errors.NewValidationError("http.addr", "must not be empty", c.HTTP.Addr)
	}
	if _, err := log.ToLogLevel(c.Log.Level); err != nil {
		return errors.NewValidationError("log.level", "must be debug, info, warn or error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return errors.NewValidationError("log.format", "must be json or console", c.Log.Format)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return errors.NewValidationError("locale", "not a BCP 47 language tag", c.Locale)
	}
	if c.Cache.Size < 0 {
		return errors.NewValidationError("cache.size", "must be >= 0", c.Cache.Size)
	}
	return nil
}

// IsProduction reports whether app.env names a production environment.
func (c *Configs) IsProduction() bool {
	env := strings.ToLower(c.App.Env)
	return env == "prod" || env == "production"
}

// LogOptions converts the log section for log.SetupLogger.
func (c *Configs) LogOptions() log.Options {
	return log.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
