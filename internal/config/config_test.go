package config

import (
	"testing"

	"evidencelens/internal/errors"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvMaxContentBytes, "")
	t.Setenv(EnvPrettyOutput, "")

	config, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "INFO", config.Log.Level)
	assert.Equal(t, int64(DefaultMaxContentBytes), config.Input.MaxContentBytes)
	assert.True(t, config.Output.Pretty)
	assert.NotNil(t, config.Logger())
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Setenv(EnvLogLevel, " debug ")
	t.Setenv(EnvMaxContentBytes, "1024")
	t.Setenv(EnvPrettyOutput, "false")

	config, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", config.Log.Level)
	assert.Equal(t, int64(1024), config.Input.MaxContentBytes)
	assert.False(t, config.Output.Pretty)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown level", EnvLogLevel, "VERBOSE"},
		{"zero size", EnvMaxContentBytes, "0"},
		{"negative size", EnvMaxContentBytes, "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLogLevel, "INFO")
			t.Setenv(EnvMaxContentBytes, "100")
			t.Setenv(tt.key, tt.value)

			_, err := LoadFrom(viper.New())
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
