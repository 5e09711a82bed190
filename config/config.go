package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Limits bound the random draws of the generator. Every draw with an upper
// limit is half open except MaxProcess, which is inclusive.
type Limits struct {
	Datasets    int
	MaxProcess  int
	MaxInterval int
	MaxTotalCPU int
	MaxCPUBurst int
	MaxIOBurst  int
}

type LogConfig struct {
	File       string
	Level      string
	Format     string
	MaxSizeMB  int
	MaxBackups int
}

type GeneratorConfig struct {
	Port      int
	OutputDir string
	// Seed is nil when draws should come from runtime entropy.
	Seed   *uint64
	Limits Limits
	Log    LogConfig
}

func DefaultLimits() Limits {
	return Limits{
		Datasets:    7,
		MaxProcess:  128,
		MaxInterval: 100,
		MaxTotalCPU: 200,
		MaxCPUBurst: 30,
		MaxIOBurst:  30,
	}
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	l := DefaultLimits()
	v.SetDefault("port", 9095)
	v.SetDefault("output_dir", ".")
	v.SetDefault("generator.datasets", l.Datasets)
	v.SetDefault("generator.max_process", l.MaxProcess)
	v.SetDefault("generator.max_interval", l.MaxInterval)
	v.SetDefault("generator.max_total_cpu", l.MaxTotalCPU)
	v.SetDefault("generator.max_cpu_burst", l.MaxCPUBurst)
	v.SetDefault("generator.max_io_burst", l.MaxIOBurst)
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}

// Load reads configFile, or config.yaml from the working directory when
// configFile is empty, into a GeneratorConfig. Only an explicitly named file
// has to exist.
func Load(v *viper.Viper, configFile string) (*GeneratorConfig, error) {
	SetDefaults(v)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./")
	}
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error while reading the config file: %w", err)
		}
	}

	config := &GeneratorConfig{}
	config.Port = v.GetInt("port")
	config.OutputDir = v.GetString("output_dir")
	if v.IsSet("seed") {
		seed := v.GetUint64("seed")
		config.Seed = &seed
	}
	config.Limits = Limits{
		Datasets:    v.GetInt("generator.datasets"),
		MaxProcess:  v.GetInt("generator.max_process"),
		MaxInterval: v.GetInt("generator.max_interval"),
		MaxTotalCPU: v.GetInt("generator.max_total_cpu"),
		MaxCPUBurst: v.GetInt("generator.max_cpu_burst"),
		MaxIOBurst:  v.GetInt("generator.max_io_burst"),
	}
	config.Log = LogConfig{
		File:       v.GetString("log.file"),
		Level:      strings.ToUpper(v.GetString("log.level")),
		Format:     strings.ToLower(v.GetString("log.format")),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *GeneratorConfig) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	switch c.Log.Level {
	case "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "OFF":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	return nil
}

func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
		min   int
	}{
		{"generator.datasets", l.Datasets, 1},
		{"generator.max_process", l.MaxProcess, 1},
		{"generator.max_interval", l.MaxInterval, 1},
		// the remaining draws are [1, max), so max must leave room for 1
		{"generator.max_total_cpu", l.MaxTotalCPU, 2},
		{"generator.max_cpu_burst", l.MaxCPUBurst, 2},
		{"generator.max_io_burst", l.MaxIOBurst, 2},
	}
	for _, c := range checks {
		if c.value < c.min {
			return fmt.Errorf("%s must be at least %d, got %d", c.name, c.min, c.value)
		}
	}
	return nil
}
