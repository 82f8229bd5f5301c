package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/config"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the HTTP transport",
		Long:  "Sign an access token with JWT_SECRET_KEY for clients connecting to /mcp.",
		RunE:  handleTokenCmd,
	}
	cmd.Flags().String("subject", "mcp-client", "Subject (client name) of the token")
	return cmd
}

func handleTokenCmd(cmd *cobra.Command, _ []string) error {
	path, err := envFile(cmd)
	if err != nil {
		return err
	}
	subject, err := cmd.Flags().GetString("subject")
	if err != nil {
		return fmt.Errorf("failed to get subject flag: %w", err)
	}

	cfg, err := config.Read(path)
	if err != nil {
		return err
	}
	if cfg.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required to issue tokens")
	}

	jwtService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	token, expiresAt, err := jwtService.GenerateAccessToken(subject)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
