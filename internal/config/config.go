package config

import (
	"fmt"
	"strings"

	"evidencelens/internal"
	"evidencelens/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment keys
const (
	EnvLogLevel        = "LOG_LEVEL"
	EnvMaxContentBytes = "EVIDENCE_MAX_BYTES"
	EnvPrettyOutput    = "EVIDENCE_PRETTY"
)

// DefaultMaxContentBytes caps the size of one evidence file
const DefaultMaxContentBytes = 50 << 20

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig
	Input  InputConfig
	Output OutputConfig
}

// LogConfig holds side-channel logging settings
type LogConfig struct {
	Level string `validate:"oneof=ERROR WARN INFO DEBUG TRACE"`
}

// InputConfig holds evidence input limits
type InputConfig struct {
	MaxContentBytes int64 `validate:"gt=0"`
}

// OutputConfig holds result rendering settings
type OutputConfig struct {
	Pretty bool
}

var validate = validator.New()

// Load reads an optional .env file, then the environment, and validates the result
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()
	return LoadFrom(viper.New())
}

// LoadFrom builds the configuration from a viper instance bound to the environment
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault(EnvLogLevel, "INFO")
	v.SetDefault(EnvMaxContentBytes, DefaultMaxContentBytes)
	v.SetDefault(EnvPrettyOutput, true)
	v.AutomaticEnv()

	config := &Config{
		Log: LogConfig{
			Level: strings.ToUpper(strings.TrimSpace(v.GetString(EnvLogLevel))),
		},
		Input: InputConfig{
			MaxContentBytes: v.GetInt64(EnvMaxContentBytes),
		},
		Output: OutputConfig{
			Pretty: v.GetBool(EnvPrettyOutput),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Logger creates the side-channel logger at the configured level
func (c *Config) Logger() *internal.Logger {
	return internal.NewLogger(internal.ParseLogLevel(c.Log.Level))
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			fe := fieldErrors[0]
			return errors.ConfigInvalid(fmt.Sprintf("%s failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}
