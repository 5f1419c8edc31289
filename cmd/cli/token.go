package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	u "github.com/gofrs/uuid/v5"
	"github.com/spf13/cobra"

	"github.com/and161185/packtrip/internal/auth"
)

// tokenCmd mints tokens locally. Meant for development and for operators who
// hold the server key; production tokens come from the account service.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Manage access tokens"}

	var (
		user string
		key  string
		ttl  time.Duration
		save bool
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token for a user id with the server key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if key == "" {
				key = os.Getenv("PACKTRIP_JWT_KEY")
			}
			if key == "" {
				return errors.New("need --jwt-key or $PACKTRIP_JWT_KEY")
			}
			id, err := u.FromString(user)
			if err != nil {
				return fmt.Errorf("bad --user: %w", err)
			}
			tok, exp, err := auth.Issue([]byte(key), id, ttl)
			if err != nil {
				return err
			}
			if save {
				if err := saveToken(tok, exp); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	issue.Flags().StringVar(&user, "user", "", "owner id (uuid)")
	issue.Flags().StringVar(&key, "jwt-key", "", "HS256 key shared with the server")
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	issue.Flags().BoolVar(&save, "save", false, "store the token for later commands")
	_ = issue.MarkFlagRequired("user")

	cmd.AddCommand(issue)
	return cmd
}
