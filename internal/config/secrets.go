package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Secrets are supplied by the execution environment and never written anywhere.
type Secrets struct {
	ClientID     string `envconfig:"STRAVA_CLIENT_ID" required:"true" validate:"required"`
	ClientSecret string `envconfig:"STRAVA_CLIENT_SECRET" required:"true" validate:"required"`
	RefreshToken string `envconfig:"STRAVA_REFRESH_TOKEN" required:"true" validate:"required"`
	// StartDate overrides the journey start date from the config file
	StartDate string `envconfig:"START_DATE" validate:"omitempty,datetime=2006-01-02"`
}

// LoadSecrets reads the strava secrets from the environment. A missing or empty
// value is an ErrConfig.
func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return &s, nil
}

// String keeps secrets out of logs.
func (s Secrets) String() string {
	return fmt.Sprintf("Secrets{ClientID: %s, ClientSecret: ***, RefreshToken: ***, StartDate: %q}", s.ClientID, s.StartDate)
}
