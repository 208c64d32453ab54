package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LAPIS_AUTH_JWT_SECRET.
const EnvPrefix = "LAPIS"

var (
	config *Config
	path   string
	mu     sync.RWMutex
	v      *viper.Viper
)

// Config represents the configuration implementation.
type Config struct {
	AppName  string
	RunMode  string
	Server   *Server
	Logger   *Logger
	Data     *Data
	Auth     *Auth
	Email    *Email
	Carousel *Carousel
	Observes *Observes
	Images   *Images
	Viper    *viper.Viper
}

// IsDevelopment reports whether the app runs in debug mode.
func (c *Config) IsDevelopment() bool {
	return c.RunMode == "debug" || c.RunMode == "development"
}

// Init loads the configuration from configPath (or the search paths when
// empty) and makes it the global one.
func Init(configPath string) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	mu.Lock()
	config = cfg
	path = configPath
	v = cfg.Viper
	mu.Unlock()
	return cfg, nil
}

// GetConfig returns the global configuration, loading defaults on first use.
func GetConfig() (*Config, error) {
	mu.RLock()
	cfg := config
	mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	cfg, err := Init(path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a configuration without touching the global one.
// A missing file is not an error: defaults and environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	nv := viper.New()
	setDefaults(nv)

	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.AddConfigPath("/etc/lapis")
		nv.AddConfigPath("$HOME/.lapis")
		nv.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			nv.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		AppName:  nv.GetString("app_name"),
		RunMode:  nv.GetString("run_mode"),
		Server:   getServerConfig(nv),
		Logger:   getLoggerConfig(nv),
		Data:     getDataConfig(nv),
		Auth:     getAuth(nv),
		Email:    getEmailConfig(nv),
		Carousel: getCarouselConfig(nv),
		Observes: getObservesConfig(nv),
		Images:   getImagesConfig(nv),
		Viper:    nv,
	}, nil
}

// Reload reloads the configuration from the file.
func Reload() (*Config, error) {
	mu.RLock()
	p := path
	mu.RUnlock()

	newConfig, err := LoadConfig(p)
	if err != nil {
		return nil, fmt.Errorf("failed to reload config: %w", err)
	}

	mu.Lock()
	config = newConfig
	mu.Unlock()
	return newConfig, nil
}

// Watch watches the configuration file and reloads it when it changes.
// onError receives reload failures; the previous configuration stays active.
func Watch(callback func(*Config), onError func(error)) {
	mu.RLock()
	wv := v
	mu.RUnlock()
	if wv == nil || wv.ConfigFileUsed() == "" {
		return
	}
	wv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := Reload()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		callback(cfg)
	})
	wv.WatchConfig()
}
