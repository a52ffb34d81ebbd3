package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/26nm/careerpath/internal/domain/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "careerpath")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "8080")

	_, err := Load()

	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.NotContains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	for _, k := range []string{"DB_HOST", "DB_PORT", "DB_SSL_MODE", "REDIS_TTL", "JWT_ACCESS_EXPIRES_IN", "JWT_ISSUER", "JWT_AUDIENCE", "SCRAPER_WORKERS", "SCRAPER_HEADLESS_FALLBACK"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "careerpath", cfg.App.AppName)
	assert.Equal(t, "localhost", cfg.Database.DBHost)
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, "disable", cfg.Database.DBSSLMode)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, "careerpath", cfg.JWT.Issuer)
	assert.Equal(t, "careerpath-api", cfg.JWT.Audience)
	assert.Equal(t, 4, cfg.Scraper.Workers)
	assert.True(t, cfg.Scraper.HeadlessFallback)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_POOL_MAX_CONNS", "12")
	t.Setenv("REDIS_TTL", "90s")
	t.Setenv("JWT_ACCESS_SECRET", "a-secret")
	t.Setenv("JWT_ISSUER", "careerpath-staging")
	t.Setenv("SCRAPER_HEADLESS_FALLBACK", "false")
	t.Setenv("SCORING_CONFIG", "/etc/careerpath/scoring.yaml")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
	assert.Equal(t, 90*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "a-secret", cfg.JWT.AccessSecret)
	assert.Equal(t, "careerpath-staging", cfg.JWT.Issuer)
	assert.False(t, cfg.Scraper.HeadlessFallback)
	assert.Equal(t, "/etc/careerpath/scoring.yaml", cfg.ScoringConfigPath)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REDIS_TTL", "ten minutes")
	t.Setenv("SCRAPER_WORKERS", "-3")

	_, err := Load()

	require.ErrorIs(t, err, errInvalidEnv)
	assert.Contains(t, err.Error(), "REDIS_TTL")
	assert.Contains(t, err.Error(), "SCRAPER_WORKERS")
}

func TestLoadScoring_Defaults(t *testing.T) {
	w, err := LoadScoring("")

	require.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), w)
}

func TestLoadScoring_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	yamlContent := `
base_match: 4
min_score: 3
resume_phrase_sizes: [2]
vocabulary_excludes_stop_terms: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o600))
	t.Setenv("SCORING_MIN_SCORE", "5")

	w, err := LoadScoring(path)

	require.NoError(t, err)
	assert.Equal(t, 4, w.BaseMatch)
	assert.Equal(t, 5, w.MinScore)
	assert.Equal(t, 1, w.Reinforcement)
	assert.Equal(t, 3, w.StopTermPenalty)
	assert.Equal(t, []int{2}, w.ResumePhraseSizes)
	assert.Equal(t, []int{1}, w.JobPhraseSizes)
	assert.True(t, w.VocabularyExcludesStopTerms)
}

func TestLoadScoring_Invalid(t *testing.T) {
	t.Setenv("SCORING_BASE_MATCH", "0")

	_, err := LoadScoring("")

	assert.ErrorIs(t, err, matching.ErrInvalidWeights)
}

func TestLoadScoring_MissingFile(t *testing.T) {
	_, err := LoadScoring(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}
