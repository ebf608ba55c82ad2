package config

import "fmt"

// QueueConfig configures the optional snapshot publisher. Leaving the URL
// empty disables publishing entirely.
type QueueConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

func (cfg *QueueConfig) Enabled() bool {
	return cfg.URL != ""
}

func (cfg *QueueConfig) Validate() error {
	if cfg.URL != "" && cfg.Exchange == "" {
		return fmt.Errorf("queue exchange is required when queue url is set")
	}
	return nil
}
