package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("STATS_DEDUPE", "")
	t.Setenv("RATING_COUNTERS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.DedupeStats)
	assert.False(t, cfg.UseRatingCounters)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "udhyogunity-prod")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://udhyogunity.in, https://admin.udhyogunity.in ,")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_live_abc")
	t.Setenv("STATS_DEDUPE", "true")
	t.Setenv("RATING_COUNTERS", "true")

	cfg := Load()
	assert.Equal(t, "udhyogunity-prod", cfg.ProjectID)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, []string{"https://udhyogunity.in", "https://admin.udhyogunity.in"}, cfg.AllowedOrigins)
	assert.Equal(t, "rzp_live_abc", cfg.RazorpayKeyID)
	assert.True(t, cfg.DedupeStats)
	assert.True(t, cfg.UseRatingCounters)
}

func TestProjectIDFallback(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("GOOGLE_CLOUD_PROJECT", "gcp-project")

	cfg := Load()
	assert.Equal(t, "gcp-project", cfg.ProjectID)
}
