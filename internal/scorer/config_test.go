package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfig(t *testing.T) {
	t.Run("valid default config", func(t *testing.T) {
		require.NoError(t, ValidateConfig(DefaultEngineConfig()))
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.FreeWeights.Clarity = -0.1
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "free_weights.clarity must be >= 0")
	})

	t.Run("free weights dont sum to 1", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.FreeWeights.Timeline = 0.5
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "free weights should sum to 1")
	})

	t.Run("paid weights dont sum to 1", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.PaidWeights.Mission = 0
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paid weights should sum to 1")
	})

	t.Run("min recipients", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.MinRecipients = 0
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min_recipients must be >= 1")
	})

	t.Run("threshold out of range", func(t *testing.T) {
		cfg := DefaultEngineConfig()
		cfg.PaidPassThreshold = 11
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paid_pass_threshold must be between 0 and 10")
	})
}

func TestWeightSums(t *testing.T) {
	cfg := DefaultEngineConfig()
	assert.InDelta(t, 1.0, FreeWeightSum(cfg.FreeWeights), 0.001)
	assert.InDelta(t, 1.0, PaidWeightSum(cfg.PaidWeights), 0.001)
}

func TestConfigHashStable(t *testing.T) {
	a := ConfigHash(DefaultEngineConfig())
	b := ConfigHash(DefaultEngineConfig())
	assert.Equal(t, a, b)
	assert.Len(t, a, 16)

	cfg := DefaultEngineConfig()
	cfg.MinRecipients = 6
	assert.NotEqual(t, a, ConfigHash(cfg))
}
