package config

import "fmt"

type APIConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (cfg *APIConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > maxPort {
		return fmt.Errorf("api port must be between 1 and %d", maxPort)
	}
	return nil
}
