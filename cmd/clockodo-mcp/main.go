package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const appName = "clockodo-mcp"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Clockodo time tracking tools for AI assistants",
		Long:          "Expose Clockodo time tracking, absences and HR compliance checks as MCP tools, gated by role.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("env-file", ".env", "Path to the environment variables file")

	cmd.AddCommand(serveCmd(), tokenCmd(), capabilitiesCmd())
	return cmd
}

func envFile(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return "", fmt.Errorf("failed to get env-file flag: %w", err)
	}
	return path, nil
}
