package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:        "development",
			Port:       "8000",
			JWTSecret:  "secure-secret-at-least-32-chars-long",
			DBPassword: "secure-password",
			DBSSLMode:  "disable",
		}
	}

	t.Run("Missing JWT Secret", func(t *testing.T) {
		c := base()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("Missing Port", func(t *testing.T) {
		c := base()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("Development Allows Short Secret", func(t *testing.T) {
		c := base()
		c.JWTSecret = "short"
		assert.NoError(t, c.Validate())
	})

	t.Run("Production Rules", func(t *testing.T) {
		tests := []struct {
			name        string
			mutate      func(*Config)
			expectError bool
		}{
			{"Valid", func(c *Config) { c.DBSSLMode = "require" }, false},
			{"Short Secret", func(c *Config) { c.DBSSLMode = "require"; c.JWTSecret = "short" }, true},
			{"Default DB Password", func(c *Config) { c.DBSSLMode = "require"; c.DBPassword = "password" }, true},
			{"SSL Disabled", func(c *Config) { c.DBSSLMode = "disable" }, true},
			{"SSL Empty", func(c *Config) { c.DBSSLMode = "" }, true},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := base()
				c.Env = "production"
				tt.mutate(c)
				err := c.Validate()
				if tt.expectError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	defer os.Unsetenv("JWT_SECRET")
	defer viper.Reset()

	os.Unsetenv("JWT_SECRET")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer os.Unsetenv("JWT_SECRET")
	defer viper.Reset()

	os.Setenv("JWT_SECRET", "test-secret")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8000", c.Port)
	assert.Equal(t, "quill", c.DBName)
	assert.Equal(t, "development", c.Env)
}
