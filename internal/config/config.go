package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "ERRKIT"
	configDirName  = ".errkit"
	configFileName = "errkit.yaml"
)

// Config holds errkit settings. Sources are applied in the order
// defaults < config file < environment < flags.
type Config struct {
	FallbackCode string   `mapstructure:"fallback_code" validate:"required"`
	Catalogs     []string `mapstructure:"catalogs" validate:"dive,required"`
	Log          struct {
		Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
		Format string `mapstructure:"format" validate:"required,oneof=console json"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
	Server struct {
		Addr string `mapstructure:"addr" validate:"required"`
	} `mapstructure:"server"`
}

var validate = validator.New()

type loadOptions struct {
	configFile string
	envFile    string
	flags      *pflag.FlagSet
	flagKeys   map[string]string
}

// Option configures Load.
type Option func(*loadOptions)

// WithConfigFile reads settings from path instead of the default location.
// A missing explicit file is an error.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) { o.configFile = path }
}

// WithEnvFile loads environment variables from path before binding them.
func WithEnvFile(path string) Option {
	return func(o *loadOptions) { o.envFile = path }
}

// WithFlag binds a command-line flag to a config key. Only flags the user
// actually set override other sources.
func WithFlag(flags *pflag.FlagSet, flagName, key string) Option {
	return func(o *loadOptions) {
		o.flags = flags
		if o.flagKeys == nil {
			o.flagKeys = make(map[string]string)
		}
		o.flagKeys[flagName] = key
	}
}

// Load resolves the configuration.
func Load(opts ...Option) (*Config, error) {
	o := loadOptions{envFile: ".env"}
	for _, opt := range opts {
		opt(&o)
	}

	if err := loadEnvFile(o.envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("fallback_code", "SYS_001")
	v.SetDefault("catalogs", []string{})
	v.SetDefault("log.level", "error")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("server.addr", "127.0.0.1:8080")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, explicit := o.configFile, o.configFile != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		if err := readConfigFile(v, path, explicit); err != nil {
			return nil, err
		}
	}

	if o.flags != nil {
		for name, key := range o.flagKeys {
			if f := o.flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath()
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, configFileName)
}

func readConfigFile(v *viper.Viper, path string, explicit bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}
