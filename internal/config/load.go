package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Parse; they override the file.
const (
	EnvDSN    = "PACKTRIP_DB_DSN"
	EnvJWTKey = "PACKTRIP_JWT_KEY"
)

// Load reads a YAML file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvDSN); v != "" {
		cfg.DB.DSN = v
	}
	if v := getenv(EnvJWTKey); v != "" {
		cfg.Auth.JWTKey = v
	}
}

// Parse builds the configuration from args: defaults, then the -config file,
// then the environment, then only the flags that were set explicitly.
func Parse(name string, args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	def := Default()
	var (
		path string
		f    = def
	)
	fs.StringVar(&path, "config", "", "YAML config file")
	fs.StringVar(&f.Server.Addr, "addr", def.Server.Addr, "gRPC listen address")
	fs.StringVar(&f.Server.AdminAddr, "admin-addr", def.Server.AdminAddr, "admin HTTP listen address (empty disables)")
	fs.DurationVar(&f.Server.RequestTimeout, "request-timeout", def.Server.RequestTimeout, "per-request deadline")
	fs.StringVar(&f.Server.TLSCert, "tls-cert", def.Server.TLSCert, "TLS certificate (PEM)")
	fs.StringVar(&f.Server.TLSKey, "tls-key", def.Server.TLSKey, "TLS private key (PEM)")
	fs.BoolVar(&f.Server.Dev, "dev", def.Server.Dev, "dev mode: reflection, plaintext, verbose logs")
	fs.StringVar(&f.DB.Driver, "db-driver", def.DB.Driver, "storage backend: postgres or memory")
	fs.StringVar(&f.DB.DSN, "dsn", def.DB.DSN, "PostgreSQL DSN")
	fs.StringVar(&f.Auth.JWTKey, "jwt-key", def.Auth.JWTKey, "HS256 verification key (required)")
	fs.BoolVar(&f.Policy.StrictFlags, "strict-flags", def.Policy.StrictFlags, "enforce pick -> pack -> ready ordering")
	fs.BoolVar(&f.Policy.StrictTransitions, "strict-transitions", def.Policy.StrictTransitions, "allow only one lifecycle step per state change")
	fs.BoolVar(&f.Policy.SnapshotViews, "snapshot-views", def.Policy.SnapshotViews, "reconcile and read trip views in one transaction")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := def
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	applyEnv(&cfg, getenv)

	set := map[string]func(){
		"addr":               func() { cfg.Server.Addr = f.Server.Addr },
		"admin-addr":         func() { cfg.Server.AdminAddr = f.Server.AdminAddr },
		"request-timeout":    func() { cfg.Server.RequestTimeout = f.Server.RequestTimeout },
		"tls-cert":           func() { cfg.Server.TLSCert = f.Server.TLSCert },
		"tls-key":            func() { cfg.Server.TLSKey = f.Server.TLSKey },
		"dev":                func() { cfg.Server.Dev = f.Server.Dev },
		"db-driver":          func() { cfg.DB.Driver = f.DB.Driver },
		"dsn":                func() { cfg.DB.DSN = f.DB.DSN },
		"jwt-key":            func() { cfg.Auth.JWTKey = f.Auth.JWTKey },
		"strict-flags":       func() { cfg.Policy.StrictFlags = f.Policy.StrictFlags },
		"strict-transitions": func() { cfg.Policy.StrictTransitions = f.Policy.StrictTransitions },
		"snapshot-views":     func() { cfg.Policy.SnapshotViews = f.Policy.SnapshotViews },
	}
	fs.Visit(func(fl *flag.Flag) {
		if apply, ok := set[fl.Name]; ok {
			apply()
		}
	})
	return cfg, nil
}
