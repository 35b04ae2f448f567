package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 14*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, int64(1), cfg.VirtualMemberID)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("DB_MAX_CONNS", "notanumber")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://keeper.or.kr, ,http://localhost:3000")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, []string{"https://keeper.or.kr", "http://localhost:3000"}, cfg.CORSOrigins())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "keeper", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/keeper?sslmode=disable", cfg.PostgresDSN())
}

func TestValidate(t *testing.T) {
	cfg := Load()
	assert.NoError(t, cfg.Validate())

	cfg.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "JWT secrets")

	cfg.JWTAccessSecret, cfg.JWTRefreshSecret = "a-real-secret", "another-real-secret"
	cfg.StorageDriver = "gcs"
	assert.ErrorContains(t, cfg.Validate(), "GCS_BUCKET")

	cfg.GCSBucket = "keeper-files"
	cfg.RefreshTTL = cfg.AccessTTL
	assert.ErrorContains(t, cfg.Validate(), "JWT_REFRESH_TTL")
}

func TestPostgresDSNEscapesPassword(t *testing.T) {
	cfg := &Config{DBUser: "keeper", DBPassword: "p@ss/word", DBHost: "db", DBPort: "5432", DBName: "keeper", DBSSLMode: "require"}
	assert.Equal(t, "postgres://keeper:p%40ss%2Fword@db:5432/keeper?sslmode=require", cfg.PostgresDSN())
}
