package config

import (
	"fmt"
	"github.com/spf13/viper"
	"time"
)

type IdentityConfig struct {
	VerifyURL     string        `mapstructure:"verify_url"`
	SessionExpiry time.Duration `mapstructure:"session_expiry"`
}

func (config IdentityConfig) validate() error {

	if config.VerifyURL == "" {
		return fmt.Errorf("missing variable: verify_url")
	}

	if config.SessionExpiry < 0 {
		return fmt.Errorf("session_expiry must be non-negative")
	}

	return nil
}

func (config IdentityConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("identity.verify_url", "IDENTITY_VERIFY_URL")
	if err != nil {
		return err
	}

	return viper.BindEnv("identity.session_expiry", "IDENTITY_SESSION_EXPIRY")
}
