package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Cognito struct {
		AppClientId     string `yaml:"appClientId"`
		AppClientSecret string `yaml:"appClientSecret"`
		UserPoolId      string `yaml:"userPoolId"`
		Region          string `yaml:"region"`
	} `yaml:"cognito"`

	Database struct {
		URI string `yaml:"uri"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Steps struct {
		PollIntervalSeconds int    `yaml:"pollIntervalSeconds"`
		SourceURL           string `yaml:"sourceUrl"`
	} `yaml:"steps"`
}

// LoadConfig reads the configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the server cannot run without. Missing values
// fail at startup with a descriptive error instead of surfacing later as a
// nil dereference mid-request.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("config: server.port is required")
	}
	if c.Database.URI == "" {
		return fmt.Errorf("config: database.uri is required")
	}
	if c.Cognito.AppClientId == "" || c.Cognito.Region == "" {
		return fmt.Errorf("config: cognito.appClientId and cognito.region are required")
	}
	if c.Steps.PollIntervalSeconds < 0 {
		return fmt.Errorf("config: steps.pollIntervalSeconds must not be negative")
	}
	return nil
}

// StepPollInterval returns the sensor polling period, defaulting to 3s.
func (c *Config) StepPollInterval() time.Duration {
	if c.Steps.PollIntervalSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.Steps.PollIntervalSeconds) * time.Second
}
