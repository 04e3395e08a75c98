package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 300, cfg.PostDataLimit)
	assert.Equal(t, 3000, cfg.ResponseThreshold)
	assert.Equal(t, 2000, cfg.ResponseLimit)
	assert.Equal(t, "regex", cfg.Extractor)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HARSCOPE_POSTDATA_LIMIT", "0")
	t.Setenv("HARSCOPE_RESPONSE_THRESHOLD", "500")
	t.Setenv("HARSCOPE_EXTRACTOR", "markup")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()

	assert.Equal(t, 0, cfg.PostDataLimit)
	assert.Equal(t, 500, cfg.ResponseThreshold)
	assert.Equal(t, "markup", cfg.Extractor)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HARSCOPE_RESPONSE_LIMIT", "lots")
	t.Setenv("HARSCOPE_LOAD_WORKERS", "-3")
	t.Setenv("LOG_COMPRESS", "maybe")

	cfg := Load()

	assert.Equal(t, DefaultResponseLimitValue, cfg.ResponseLimit)
	assert.Equal(t, DefaultLoadWorkersValue, cfg.LoadWorkers)
	assert.True(t, cfg.LogCompress)
}
