// Command packtrip is a CLI client for the packing engine.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/and161185/packtrip/internal/api"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "packtrip")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "packtrip")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tok string, exp time.Time) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(tokenPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, ExpiresAt: exp})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (run `packtrip token issue --save`)")
	}
	return tf.AccessToken, nil
}

// resolveToken prefers the flag, then $PACKTRIP_TOKEN, then the saved token.
func resolveToken(flagVal string, getenv func(string) string) (string, error) {
	if flagVal != "" {
		return flagVal, nil
	}
	if v := getenv("PACKTRIP_TOKEN"); v != "" {
		return v, nil
	}
	return loadToken()
}

// ---- grpc dial ----

type bearerCreds struct {
	token  string
	secure bool
}

func (b bearerCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}
func (b bearerCreds) RequireTransportSecurity() bool { return b.secure }

func loadTLS(caPath string, skipVerify bool) (credentials.TransportCredentials, error) {
	if skipVerify {
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil
	}
	if caPath == "" {
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	addr      string
	caPath    string
	insecure  bool
	plaintext bool
	token     string
	timeout   time.Duration
	asJSON    bool
}

func (g *globals) dial(ctx context.Context) (*grpc.ClientConn, *api.Client, error) {
	tok, err := resolveToken(g.token, os.Getenv)
	if err != nil {
		return nil, nil, err
	}
	var creds credentials.TransportCredentials
	if g.plaintext {
		creds = insecure.NewCredentials()
	} else if creds, err = loadTLS(g.caPath, g.insecure); err != nil {
		return nil, nil, err
	}
	//nolint:staticcheck // DialContext is supported through 1.x; migrate when grpc.NewClient is stable
	cc, err := grpc.DialContext(ctx, g.addr,
		grpc.WithTransportCredentials(creds),
		grpc.WithPerRPCCredentials(bearerCreds{token: tok, secure: !g.plaintext}),
	)
	if err != nil {
		return nil, nil, err
	}
	return cc, api.NewClient(cc), nil
}

// call dials, runs fn with a bounded context and closes the connection.
func (g *globals) call(cmd *cobra.Command, fn func(ctx context.Context, cl *api.Client) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), g.timeout)
	defer cancel()
	cc, cl, err := g.dial(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()
	return fn(ctx, cl)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

func rootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:           "packtrip",
		Short:         "Plan and pack trips against a packtrip server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&g.addr, "addr", "localhost:8443", "server addr")
	pf.StringVar(&g.caPath, "cacert", "", "CA cert (PEM)")
	pf.BoolVar(&g.insecure, "insecure", false, "skip cert verify (dev)")
	pf.BoolVar(&g.plaintext, "plaintext", false, "no TLS (dev server only)")
	pf.StringVar(&g.token, "token", "", "bearer token (default $PACKTRIP_TOKEN or saved token)")
	pf.DurationVar(&g.timeout, "timeout", 30*time.Second, "request timeout")
	pf.BoolVar(&g.asJSON, "json", false, "print raw JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "packtrip %s (%s)\n", version, buildDate)
			},
		},
		tokenCmd(),
		tripsCmd(g),
		itemsCmd(g),
	)
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
