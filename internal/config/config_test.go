package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "development",
		Port:                     "8000",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		AccessTokenExpireMinutes: 30,
		BcryptCost:               10,
		DBDriver:                 DriverSQLite,
		DBPath:                   "blog.db",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"zero token ttl", func(c *Config) { c.AccessTokenExpireMinutes = 0 }, true},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 1 }, true},
		{"bcrypt cost too high", func(c *Config) { c.BcryptCost = 40 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"production with short secret", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "short"
		}, true},
		{"production postgres with default password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverPostgres
			c.DBPassword = "password"
			c.DBSSLMode = "require"
		}, true},
		{"production postgres without ssl", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverPostgres
			c.DBPassword = "a-strong-password"
			c.DBSSLMode = "disable"
		}, true},
		{"production postgres with ssl", func(c *Config) {
			c.Env = "production"
			c.DBDriver = DriverPostgres
			c.DBPassword = "a-strong-password"
			c.DBSSLMode = "verify-full"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_AccessTokenTTL(t *testing.T) {
	c := validConfig()
	c.AccessTokenExpireMinutes = 45
	assert.Equal(t, 45*time.Minute, c.AccessTokenTTL())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "  SQLite ")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("JWT_SECRET", "env-secret-with-more-than-32-characters")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, DriverSQLite, c.DBDriver)
	assert.Equal(t, 15, c.AccessTokenExpireMinutes)
	assert.Equal(t, "env-secret-with-more-than-32-characters", c.JWTSecret)
	assert.False(t, c.IsProduction())
}

func TestLoadConfig_ProfileRequiredOutsideDevelopment(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "staging")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	_, err = LoadConfig()
	assert.Error(t, err)
}
