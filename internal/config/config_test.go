package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBase() *Config {
	return &Config{
		JWTSecret:     "secure-secret-at-least-32-chars-long",
		JWTTTLMinutes: 60,
		Port:          "5000",
		DBPassword:    "secure-password",
		DBSSLMode:     "require",
		RedisURL:      "localhost:6379",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development", func(c *Config) { c.Env = "development"; c.DBSSLMode = "disable" }, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero token TTL", func(c *Config) { c.JWTTTLMinutes = 0 }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with weak DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production without SSL", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production hardened", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validBase()
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
