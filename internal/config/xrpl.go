package config

import (
	"fmt"
	"time"
)

type XRPLConfig struct {
	// Endpoint is the websocket URL of the rippled server, including the
	// ws:// or wss:// scheme.
	Endpoint           string        `mapstructure:"endpoint"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	ReconnectBaseDelay time.Duration `mapstructure:"reconnect-base-delay"`
	ReconnectMaxDelay  time.Duration `mapstructure:"reconnect-max-delay"`
}

func (cfg *XRPLConfig) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("XRPL websocket endpoint is required")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("XRPL request timeout must be positive")
	}
	if cfg.ReconnectBaseDelay <= 0 {
		return fmt.Errorf("XRPL reconnect base delay must be positive")
	}
	if cfg.ReconnectMaxDelay < cfg.ReconnectBaseDelay {
		return fmt.Errorf("XRPL reconnect max delay must be >= base delay")
	}
	return nil
}
