package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_Defaults(t *testing.T) {
	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "richblocks.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "@every 1m", cfg.SessionSweepSchedule)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestReadConfig_Env(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":7000")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SNIPPET_CONVERSION", "true")
	t.Setenv("SESSION_LIMIT", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WEB_URL", "https://cms.example.com")
	t.Setenv("FIELD_OPTIONS", `{"disableDefaultFonts":true,"customFontsPresets":"Georgia:georgia"}`)

	cfg, err := readConfig()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SnippetConversion)
	assert.Equal(t, 10, cfg.SessionLimit)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "cms.example.com", cfg.WebURL.Host)
	assert.True(t, cfg.FieldOptions.DisableDefaultFonts)
	assert.Equal(t, "Georgia:georgia", cfg.FieldOptions.CustomFontsPresets)
}

func TestReadConfig_InvalidFieldOptions(t *testing.T) {
	t.Setenv("FIELD_OPTIONS", `{"customSizesPresets":"big"}`)
	_, err := readConfig()
	assert.Error(t, err)

	t.Setenv("FIELD_OPTIONS", `not json`)
	_, err = readConfig()
	assert.Error(t, err)
}

func TestReadConfig_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"SESSION_TTL":        "soon",
		"SESSION_LIMIT":      "many",
		"SNIPPET_CONVERSION": "maybe",
		"WEB_URL":            "://cms",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := readConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLogValue(t *testing.T) {
	assert.Equal(t, ":8080", logValue("ListenAddrLISTEN_ADDR", ":8080"))
	assert.Equal(t, "p***s", logValue("DatabaseDSNDATABASE_URL", "pgpas"))
	assert.Equal(t, "**", logValue("Secret", "ab"))
}
