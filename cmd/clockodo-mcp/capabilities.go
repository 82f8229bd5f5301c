package main

import (
	"encoding/json"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/config"
	mcphandler "github.com/cmlabs-hris/clockodo-mcp-go/internal/handler/mcp"
	"github.com/spf13/cobra"
)

func capabilitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Print the resolved role, capabilities and enabled tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := envFile(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Read(path)
			if err != nil {
				return err
			}
			gate, err := resolveGate(cfg)
			if err != nil {
				return err
			}

			server := mcphandler.NewServer(gate, mcphandler.Services{}, mcphandler.Options{
				Name:    appName,
				Version: version,
			})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(server.Health())
		},
	}
}
