package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AethraData/aiklyra/internal/config"
	"github.com/AethraData/aiklyra/internal/flowserver"
)

func newServeCommand() *cobra.Command {
	var addr string
	var apiKeys []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local reference analysis server",
		Long: `Serve starts a local implementation of the analysis API for development
and integration testing. It accepts the configured API keys and answers
the same wire contract as the hosted service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if len(apiKeys) > 0 {
				cfg.Server.APIKeys = apiKeys
			}
			if len(cfg.Server.APIKeys) == 0 {
				return fmt.Errorf("no API keys configured (set AIKLYRA_SERVER_API_KEYS or --api-key)")
			}

			return flowserver.New(cfg.Server).Run()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides AIKLYRA_SERVER_ADDR)")
	cmd.Flags().StringSliceVar(&apiKeys, "api-key", nil, "API key to accept (repeatable)")

	return cmd
}
