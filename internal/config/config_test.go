package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "file", cfg.ModelStore)
	assert.Equal(t, 50, cfg.RetrainThreshold)
	assert.Equal(t, 7*24*time.Hour, cfg.RetrainWindow)
	assert.True(t, cfg.RetrainAsync)
	assert.Equal(t, 100, cfg.TrainEpochs)
	assert.Equal(t, 32, cfg.TrainBatchSize)
	assert.InDelta(t, 0.2, cfg.TrainValidationSplit, 1e-9)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MODEL_STORE", "redis")
	t.Setenv("RETRAIN_WINDOW", "24h")
	t.Setenv("RETRAIN_ASYNC", "false")
	t.Setenv("TRAIN_VALIDATION_SPLIT", "0.25")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "redis", cfg.ModelStore)
	assert.Equal(t, 24*time.Hour, cfg.RetrainWindow)
	assert.False(t, cfg.RetrainAsync)
	assert.InDelta(t, 0.25, cfg.TrainValidationSplit, 1e-9)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.ModelStore = "s3"
	cfg.TrainValidationSplit = 1
	cfg.JWTSecret = "short"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MODEL_STORE")
	assert.Contains(t, err.Error(), "TRAIN_VALIDATION_SPLIT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
