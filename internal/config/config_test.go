// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Points.ListingReward)
	assert.Equal(t, 10, cfg.Points.SwapReward)
	assert.NotEmpty(t, cfg.Admin.Emails)
}

func TestAdminEmailsFromEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "mod@rewear.com, ops@rewear.com ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"mod@rewear.com", "ops@rewear.com"}, cfg.Admin.Emails)
	assert.True(t, cfg.IsAdminEmail("mod@rewear.com"))
	assert.True(t, cfg.IsAdminEmail("OPS@REWEAR.COM"), "allowlist match is case-insensitive")
	assert.False(t, cfg.IsAdminEmail("user@rewear.com"))
}

func TestPointRewardOverrides(t *testing.T) {
	t.Setenv("POINTS_LISTING_REWARD", "7")
	t.Setenv("POINTS_SWAP_REWARD", "20")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Points.ListingReward)
	assert.Equal(t, 20, cfg.Points.SwapReward)
}

func TestPresignedURLFlag(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.AWS.UsePresignedURLs)

	t.Setenv("AWS_USE_PRESIGNED_URLS", "TRUE")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.AWS.UsePresignedURLs)

	t.Setenv("AWS_USE_PRESIGNED_URLS", "not-a-bool")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.AWS.UsePresignedURLs, "unparseable value keeps the default")
}

func TestValidateRejectsNegativeRewards(t *testing.T) {
	t.Setenv("POINTS_LISTING_REWARD", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateProductionRequirements(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "secret")

	_, err := Load()
	assert.Error(t, err, "default JWT secret must be rejected in production")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
