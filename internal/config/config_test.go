package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("Valores padrão", func(t *testing.T) {
		viper.Reset()
		t.Setenv("DATABASE_URL", "db:5432/finance")

		cfg, err := NewConfig()

		require.NoError(t, err)
		assert.Equal(t, 20.0, cfg.Analysis.LowProfitabilityThreshold)
		assert.Equal(t, 30, cfg.Analysis.LookbackDays)
		assert.Equal(t, 24, cfg.Analysis.ProjectionHistoryMonths)
		assert.Equal(t, "0 7 * * *", cfg.HealthDigest.CronSchedule)
		assert.False(t, cfg.HealthDigest.Enabled)
		assert.Empty(t, cfg.Redis.Address)
		assert.Equal(t, "postgres://postgres:root@db:5432/finance", cfg.Database.DSN)
	})

	t.Run("Variáveis de ambiente sobrescrevem os padrões", func(t *testing.T) {
		viper.Reset()
		t.Setenv("LOW_PROFITABILITY_THRESHOLD", "35")
		t.Setenv("HEALTH_DIGEST_ENABLED", "true")
		t.Setenv("REDIS_ADDRESS", "localhost:6379")

		cfg, err := NewConfig()

		require.NoError(t, err)
		assert.Equal(t, 35.0, cfg.Analysis.LowProfitabilityThreshold)
		assert.True(t, cfg.HealthDigest.Enabled)
		assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	})
}
