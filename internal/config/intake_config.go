package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
)

type formMode string

const (
	FormModeProduction formMode = "production"
	FormModeTest       formMode = "test"
)

type IntakeConfig struct {
	URL                  string   `mapstructure:"url"`
	FormMode             formMode `mapstructure:"form_mode"`
	MaxRequestsPerSecond float32  `mapstructure:"max_requests_per_second"`
}

func (config IntakeConfig) validate() error {

	var missingFields []string

	if config.URL == "" {
		missingFields = append(missingFields, "url")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.FormMode != FormModeProduction && config.FormMode != FormModeTest {
		return fmt.Errorf("form_mode must be %q or %q", FormModeProduction, FormModeTest)
	}

	return nil
}

func (config IntakeConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("intake.url", "INTAKE_URL")
	if err != nil {
		return err
	}

	err = viper.BindEnv("intake.form_mode", "INTAKE_FORM_MODE")
	if err != nil {
		return err
	}

	return viper.BindEnv("intake.max_requests_per_second", "INTAKE_MAX_REQUESTS_PER_SECOND")
}
