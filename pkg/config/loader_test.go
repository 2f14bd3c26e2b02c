package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelane/plankit/pkg/config"
)

type ledgerConfig struct {
	URL      string        `env:"TEST_LEDGER_URL,required"`
	Timeout  time.Duration `env:"TEST_LEDGER_TIMEOUT" envDefault:"10s"`
	Attempts int           `env:"TEST_LEDGER_ATTEMPTS" envDefault:"3"`
}

func TestLoad(t *testing.T) {
	t.Run("applies environment and defaults", func(t *testing.T) {
		t.Setenv("TEST_LEDGER_URL", "mongodb://localhost:27017")

		var cfg ledgerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "mongodb://localhost:27017", cfg.URL)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Attempts)
	})

	t.Run("overrides defaults from environment", func(t *testing.T) {
		t.Setenv("TEST_LEDGER_URL", "mongodb://db:27017")
		t.Setenv("TEST_LEDGER_ATTEMPTS", "7")

		var cfg ledgerConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 7, cfg.Attempts)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg struct {
			Other string `env:"TEST_UNSET_REQUIRED_VAR,required"`
		}
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		assert.ErrorIs(t, config.Load[ledgerConfig](nil), config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		var cfg struct {
			Required string `env:"TEST_ANOTHER_UNSET_VAR,required"`
		}
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
