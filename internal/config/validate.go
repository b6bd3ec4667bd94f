package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBackend(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBackend() error {
	switch c.Backend.Kind {
	case "openai", "azure":
	default:
		return fmt.Errorf("backend.kind must be \"openai\" or \"azure\", got %q", c.Backend.Kind)
	}
	if c.Backend.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/scribe/config.toml"
		}
		return fmt.Errorf("backend.api_key is required. Set SCRIBE_API_KEY env var or edit %s (create with 'scribe config init')", defaultPath)
	}
	if c.Backend.Endpoint == "" {
		return errors.New("backend.endpoint must be set")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Splits <= 0 {
		return errors.New("pipeline.splits must be positive")
	}
	if c.Pipeline.Concurrency <= 0 {
		return errors.New("pipeline.concurrency must be positive")
	}
	if c.Pipeline.BatchWorkers <= 0 {
		return errors.New("pipeline.batch_workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
