package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "packtrip.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func noEnv(string) string { return "" }

func TestDefault_NeedsKey(t *testing.T) {
	cfg := Default()
	require.ErrorContains(t, cfg.Validate(), "auth.jwt_key")
	cfg.Auth.JWTKey = "0123456789abcdef"
	require.NoError(t, cfg.Validate())
	require.True(t, cfg.TLSEnabled())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	p := writeFile(t, `
server:
  addr: ":7000"
  request_timeout: 3s
db:
  dsn: postgres://x@db/packtrip
auth:
  jwt_key: from-file-0123456789
policy:
  strict_flags: true
  snapshot_views: true
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Server.Addr)
	require.Equal(t, ":9090", cfg.Server.AdminAddr, "untouched keys keep defaults")
	require.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	require.Equal(t, DriverPostgres, cfg.DB.Driver)
	require.True(t, cfg.Policy.StrictFlags)
	require.False(t, cfg.Policy.StrictTransitions)
	require.True(t, cfg.Policy.SnapshotViews)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "read config file")

	_, err = Load(writeFile(t, "server: [unclosed"))
	require.ErrorContains(t, err, "parse config file")
}

func TestParse_Precedence(t *testing.T) {
	p := writeFile(t, `
server:
  addr: ":7000"
db:
  dsn: postgres://file
auth:
  jwt_key: file-key-0123456789
`)
	env := map[string]string{EnvJWTKey: "env-key-0123456789"}
	cfg, err := Parse("packtrip-server", []string{"-config", p, "-addr", ":7100", "-strict-transitions"},
		func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, ":7100", cfg.Server.Addr, "flag beats file")
	require.Equal(t, "postgres://file", cfg.DB.DSN, "unset flag keeps file value")
	require.Equal(t, "env-key-0123456789", cfg.Auth.JWTKey, "env beats file")
	require.True(t, cfg.Policy.StrictTransitions)

	cfg, err = Parse("packtrip-server", []string{"-jwt-key", "flag-key-0123456789"},
		func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, "flag-key-0123456789", cfg.Auth.JWTKey, "flag beats env")
}

func TestParse_NoFile(t *testing.T) {
	cfg, err := Parse("packtrip-server", []string{"-dev", "-db-driver", "memory", "-tls-cert", "", "-tls-key", "", "-jwt-key", "k"}, noEnv)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.TLSEnabled())

	_, err = Parse("packtrip-server", []string{"-bogus"}, noEnv)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Default()
	base.Auth.JWTKey = "0123456789abcdef"

	cases := map[string]func(*Config){
		"no addr":     func(c *Config) { c.Server.Addr = "" },
		"neg timeout": func(c *Config) { c.Server.RequestTimeout = -time.Second },
		"no tls":      func(c *Config) { c.Server.TLSCert = "" },
		"bad driver":  func(c *Config) { c.DB.Driver = "sqlite" },
		"no dsn":      func(c *Config) { c.DB.DSN = "" },
		"short key":   func(c *Config) { c.Auth.JWTKey = "short" },
	}
	for name, mut := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mut(&c)
			require.Error(t, c.Validate())
		})
	}

	mem := base
	mem.DB = DBConfig{Driver: DriverMemory}
	require.NoError(t, mem.Validate())
}
