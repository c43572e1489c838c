package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type titleResolution string

const (
	// ResolveByID joins the stored job id against the job-posts collection.
	ResolveByID titleResolution = "resolve-by-id"
	// LiteralField treats the stored "job applied" value as the title itself.
	LiteralField titleResolution = "literal-field"
)

// ReviewConfig pins per-deployment behavior of the CV review screens: which
// rating scale the external analysis service emits and how job titles are
// resolved for CV records.
type ReviewConfig struct {
	RatingScale     int             `mapstructure:"rating_scale"`
	TitleResolution titleResolution `mapstructure:"title_resolution"`
}

func (config ReviewConfig) validate() error {

	if config.RatingScale != 5 && config.RatingScale != 10 {
		return fmt.Errorf("rating_scale must be 5 or 10, got %d", config.RatingScale)
	}

	if config.TitleResolution != ResolveByID && config.TitleResolution != LiteralField {
		return fmt.Errorf("title_resolution must be %q or %q", ResolveByID, LiteralField)
	}

	return nil
}

func (config ReviewConfig) bindEnvironmentVariables() error {

	err := viper.BindEnv("review.rating_scale", "REVIEW_RATING_SCALE")
	if err != nil {
		return err
	}

	return viper.BindEnv("review.title_resolution", "REVIEW_TITLE_RESOLUTION")
}
