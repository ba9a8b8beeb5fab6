package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"alicia-launcher/internal/domain"
)

const DefaultPath = "settings.json"

var validate *validator.Validate

type Config struct {
	WebInfoID           string         `json:"webInfoId" validate:"required,regionname"`
	WebInfoContent      WebInfoContent `json:"webInfoContent"`
	WebInfoDirectory    string         `json:"webInfoDirectory,omitempty"`
	ExecutableProgram   string         `json:"executableProgram" validate:"required_if=Launch true"`
	ExecutableArguments string         `json:"executableArguments"`
	Launch              bool           `json:"launch"`
	MetricsFile         string         `json:"metricsFile,omitempty"`
}

// NewConfig loads the launcher settings from CONFIG_PATH, or settings.json in
// the working directory.
func NewConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading settings: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing settings: %w", err)
	}

	// Validate the configuration
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return nil, formatValidationErrors(validationErrors)
		}
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &cfg, nil
}

// WebInfo returns the configured record with creds applied over the login fields.
func (c *Config) WebInfo(creds domain.Credentials) domain.WebInfo {
	info := c.WebInfoContent.WebInfo
	if !creds.Empty() {
		info.LoginID = creds.LoginID
		info.AuthKey = creds.AuthKey
	}
	return info
}

// Credentials reads the login id and auth key from the positional
// command-line arguments. Both must be present.
func Credentials(args []string) (domain.Credentials, bool) {
	if len(args) < 2 {
		return domain.Credentials{}, false
	}
	return domain.Credentials{LoginID: args[0], AuthKey: args[1]}, true
}

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("regionname", validateRegionName); err != nil {
		panic(fmt.Sprintf("failed to register region name validator: %v", err))
	}
}

// Region names end up both as a temp file name and as an OS object name.
func validateRegionName(fl validator.FieldLevel) bool {
	return domain.ValidateRegionName(fl.Field().String()) == nil
}

// formatValidationErrors formats validation errors into a user-friendly error message
func formatValidationErrors(errors validator.ValidationErrors) error {
	var errMsgs []string
	for _, err := range errors {
		errMsgs = append(errMsgs, fmt.Sprintf(
			"field '%s' failed validation: %s",
			err.Field(),
			err.Tag(),
		))
	}
	return fmt.Errorf("validation errors: %v", errMsgs)
}
