package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/AethraData/aiklyra"
	"github.com/AethraData/aiklyra/internal/config"
)

func newAnalyseCommand() *cobra.Command {
	var (
		file        string
		apiKey      string
		baseURL     string
		minClusters int
		maxClusters int
	)

	cmd := &cobra.Command{
		Use:   "analyse",
		Short: "Analyse a conversation transcript file",
		Long: `Analyse reads a JSON file mapping session ids to conversation turns,
submits it to the analysis service and prints the resulting transition
matrix with one labelled row and column per intent cluster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if apiKey == "" {
				apiKey = cfg.Aiklyra.APIKey
			}
			if apiKey == "" {
				return fmt.Errorf("API key not configured (set AIKLYRA_API_KEY or --api-key)")
			}
			if baseURL == "" {
				baseURL = cfg.Aiklyra.BaseURL
			}

			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read transcript file: %w", err)
			}
			var data aiklyra.ConversationData
			if err := json.Unmarshal(raw, &data); err != nil {
				return fmt.Errorf("parse transcript file: %w", err)
			}

			var opts []aiklyra.AnalyseOption
			if cmd.Flags().Changed("min-clusters") {
				opts = append(opts, aiklyra.WithMinClusters(minClusters))
			}
			if cmd.Flags().Changed("max-clusters") {
				opts = append(opts, aiklyra.WithMaxClusters(maxClusters))
			}

			client := aiklyra.NewClient(apiKey, baseURL,
				aiklyra.WithHTTPClient(&http.Client{Timeout: cfg.Aiklyra.Timeout}))

			slog.Debug("submitting analysis", "sessions", len(data), "base_url", baseURL)
			result, err := client.Analyse(context.Background(), data, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTransitionMatrix(result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the transcript JSON file")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key (overrides AIKLYRA_API_KEY)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Service base URL (overrides AIKLYRA_BASE_URL)")
	cmd.Flags().IntVar(&minClusters, "min-clusters", 0, "Lower bound on discovered clusters")
	cmd.Flags().IntVar(&maxClusters, "max-clusters", 0, "Upper bound on discovered clusters")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
