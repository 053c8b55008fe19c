package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:            "8460",
		Env:             "development",
		JWTSecret:       "your-secret-key-change-in-production",
		AccessTokenTTL:  60,
		RefreshTokenTTL: 168,
		PageSize:        20,
		DBPassword:      "password",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("Development Defaults Pass", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Missing Port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing JWT Secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Non Positive Page Size", func(t *testing.T) {
		cfg := validConfig()
		cfg.PageSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("Non Positive Token TTLs", func(t *testing.T) {
		cfg := validConfig()
		cfg.AccessTokenTTL = 0
		assert.Error(t, cfg.Validate())

		cfg = validConfig()
		cfg.RefreshTokenTTL = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigValidate_Production(t *testing.T) {
	productionConfig := func() *Config {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "an-actually-long-production-grade-secret"
		cfg.DBPassword = "sXp2!longrandom"
		cfg.DBSSLMode = "require"
		return cfg
	}

	t.Run("Hardened Config Passes", func(t *testing.T) {
		assert.NoError(t, productionConfig().Validate())
	})

	t.Run("Default Secret Rejected", func(t *testing.T) {
		cfg := productionConfig()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Short Secret Rejected", func(t *testing.T) {
		cfg := productionConfig()
		cfg.JWTSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Weak DB Password Rejected", func(t *testing.T) {
		cfg := productionConfig()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())

		cfg.DBPassword = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Prod Alias Enforced Too", func(t *testing.T) {
		cfg := productionConfig()
		cfg.Env = "prod"
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})
}
