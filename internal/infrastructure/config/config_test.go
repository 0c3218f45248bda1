package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hrm-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "Asia/Tokyo", cfg.App.Timezone)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hrm", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)

	assert.Equal(t, 168*time.Hour, cfg.Session.Expiration)
	assert.Equal(t, "hrm-backend", cfg.Session.Issuer)
	assert.Equal(t, "hrm_session", cfg.Cookie.Name)
	assert.Equal(t, "lax", cfg.Cookie.SameSite)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxBodySize)
	assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HRM_APP_PORT", "9090")
	t.Setenv("HRM_APP_TIMEZONE", "UTC")
	t.Setenv("HRM_DATABASE_PASSWORD", "s3cret")
	t.Setenv("HRM_SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("HRM_SMTP_ACCOUNTING_EMAIL", "keiri@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "UTC", cfg.App.Timezone)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "xoxb-test", cfg.Slack.BotToken)
	assert.Equal(t, "keiri@example.com", cfg.SMTP.AccountingEmail)
}

func TestLoadInvalidTimezone(t *testing.T) {
	t.Setenv("HRM_APP_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestLoadInvalidSameSite(t *testing.T) {
	t.Setenv("HRM_COOKIE_SAME_SITE", "sideways")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "same_site")
}

func TestProductionValidation(t *testing.T) {
	longSecret := "0123456789abcdef0123456789abcdef"

	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{},
			want: "session.secret",
		},
		{
			name: "short session secret",
			env:  map[string]string{"HRM_SESSION_SECRET": "short"},
			want: "session.secret",
		},
		{
			name: "missing database password",
			env: map[string]string{
				"HRM_SESSION_SECRET": longSecret,
			},
			want: "database.password",
		},
		{
			name: "sslmode disable",
			env: map[string]string{
				"HRM_SESSION_SECRET":    longSecret,
				"HRM_DATABASE_PASSWORD": "pw",
			},
			want: "sslmode",
		},
		{
			name: "insecure cookie",
			env: map[string]string{
				"HRM_SESSION_SECRET":    longSecret,
				"HRM_DATABASE_PASSWORD": "pw",
				"HRM_DATABASE_SSLMODE":  "require",
			},
			want: "cookie.secure",
		},
		{
			name: "esign without webhook secret",
			env: map[string]string{
				"HRM_SESSION_SECRET":    longSecret,
				"HRM_DATABASE_PASSWORD": "pw",
				"HRM_DATABASE_SSLMODE":  "require",
				"HRM_COOKIE_SECURE":     "true",
				"HRM_ESIGN_BASE_URL":    "https://esign.example.com",
			},
			want: "webhook_secret",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HRM_APP_ENV", "production")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestProductionValidationPasses(t *testing.T) {
	t.Setenv("HRM_APP_ENV", "production")
	t.Setenv("HRM_SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("HRM_DATABASE_PASSWORD", "pw")
	t.Setenv("HRM_DATABASE_SSLMODE", "require")
	t.Setenv("HRM_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "hrm user",
		Password: "p@ss/word",
		DBName:   "hrm",
		SSLMode:  "require",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "hrm%20user")
	assert.NotContains(t, dsn, "p@ss/word")
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "db.internal:5432")
}

func TestLocationFallsBackToUTC(t *testing.T) {
	c := Config{App: AppConfig{Timezone: "Nowhere/Invalid"}}
	assert.Equal(t, time.UTC, c.Location())
}
