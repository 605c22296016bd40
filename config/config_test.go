package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "uploads", cfg.UploadDir)
}

func TestLoadOverridesAndFallbacks(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("JWT_TTL", "15m")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
}

func TestCSVHelpers(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test", ElasticsearchAddrs: ""}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.ESAddrs())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "blog", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/blog?sslmode=disable", cfg.PostgresDSN())
}
