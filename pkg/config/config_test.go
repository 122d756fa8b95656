package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_PASSWORD", "testpass")
	t.Setenv("DB_NAME", "testdb")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("S3_BLOG_BUCKET", "blog-test")
	t.Setenv("LIST_PAGE_SIZE", "25")
	t.Setenv("DRAFT_AUTOSAVE_INTERVAL", "15s")
	t.Setenv("LOG_PRETTY", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "blog-test", cfg.S3BlogBucket)
	assert.Equal(t, 25, cfg.ListPageSize)
	assert.Equal(t, 15*time.Second, cfg.DraftAutosaveInterval)
	assert.False(t, cfg.LogPretty)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LIST_PAGE_SIZE", "")
	t.Setenv("MEDIA_CLEANUP_CONCURRENCY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 10, cfg.ListPageSize)
	assert.Equal(t, 1, cfg.MediaCleanupConcurrency)
	assert.Equal(t, 30*time.Second, cfg.DraftAutosaveInterval)
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("LIST_PAGE_SIZE", "-3")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SELECTION_TTL", "soon")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 10, cfg.ListPageSize)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 2*time.Hour, cfg.SelectionTTL)
}
