package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.DashboardVentana)
	assert.Equal(t, 5, cfg.CuotasVencidasPorMes)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout())
	assert.Equal(t, time.Minute, cfg.DashboardCacheTTL())
	assert.Equal(t, "America/La_Paz", cfg.Location().String())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DASHBOARD_VENTANA", "6")
	t.Setenv("DB_LOCK_TIMEOUT_MS", "250")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.DashboardVentana)
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoad_Invalida(t *testing.T) {
	cases := map[string]map[string]string{
		"produccion sin secreto": {"APP_ENV": "production", "JWT_SECRET": ""},
		"zona desconocida":       {"APP_TIMEZONE": "Marte/Olympus"},
		"ventana cero":           {"DASHBOARD_VENTANA": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAllowedOrigins(t *testing.T) {
	assert.Nil(t, (&Config{CORSOrigins: "*"}).AllowedOrigins())
	assert.Nil(t, (&Config{CORSOrigins: ""}).AllowedOrigins())
	assert.Equal(t,
		[]string{"http://localhost:5173", "https://lotes.bo"},
		(&Config{CORSOrigins: " http://localhost:5173 ,https://lotes.bo,"}).AllowedOrigins())
}
