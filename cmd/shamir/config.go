package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/privy-io/shamir-secret-sharing/xlogger"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SHAMIR"

// Config holds defaults for the shamir command. Values are layered as
// Default() < config file < environment < command-line flags.
type Config struct {
	Shares    int       `yaml:"shares"`
	Threshold int       `yaml:"threshold"`
	Format    string    `yaml:"format"`
	Log       LogConfig `yaml:"log"`

	// thresholdSet reports whether Threshold came from somewhere other than Default.
	thresholdSet bool
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Default() {
	c.Shares = 3
	c.Threshold = 2
	c.Format = formatText
	c.Log.Level = "warn"
	c.Log.Format = "text"
}

func (c *Config) Validate() error {
	switch c.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (expected text, json or yaml)", c.Format)
	}

	return c.loggerConfig().Validate()
}

func (c *Config) loggerConfig() xlogger.Config {
	return xlogger.Config{
		Level:   c.Log.Level,
		LogType: c.Log.Format,
	}
}

// loadConfig builds the configuration from defaults, the optional YAML file at path
// and environment variables found through lookupEnv.
func loadConfig(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	conf := &Config{}
	conf.Default()

	if path != "" {
		if err := loadConfigFile(conf, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := loadConfigEnv(conf, lookupEnv); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	return conf, nil
}

func loadConfigFile(conf *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	threshold := conf.Threshold
	conf.Threshold = 0

	if err := dec.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	if conf.Threshold == 0 {
		conf.Threshold = threshold
	} else {
		conf.thresholdSet = true
	}

	return nil
}

func loadConfigEnv(conf *Config, lookupEnv func(string) (string, bool)) error {
	ints := map[string]*int{
		"SHARES":    &conf.Shares,
		"THRESHOLD": &conf.Threshold,
	}
	for name, field := range ints {
		value, ok := lookupEnv(envPrefix + "_" + name)
		if !ok || value == "" {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer value for %s_%s: %s", envPrefix, name, value)
		}
		*field = n

		if field == &conf.Threshold {
			conf.thresholdSet = true
		}
	}

	strs := map[string]*string{
		"FORMAT":     &conf.Format,
		"LOG_LEVEL":  &conf.Log.Level,
		"LOG_FORMAT": &conf.Log.Format,
	}
	for name, field := range strs {
		if value, ok := lookupEnv(envPrefix + "_" + name); ok && value != "" {
			*field = strings.TrimSpace(value)
		}
	}

	return nil
}
