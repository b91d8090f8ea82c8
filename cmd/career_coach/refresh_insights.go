package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/spf13/cobra"
)

var refreshInsightsCmd = &cobra.Command{
	Use:   "refresh-insights",
	Short: "Regenerate industry insights that are due for an update",
	Long:  "Finds every industry insight whose next update time has passed and regenerates it with the AI model. Meant to run on a schedule.",
	RunE:  runRefreshInsights,
}

var refreshConcurrency int

func init() {
	refreshInsightsCmd.Flags().IntVar(&refreshConcurrency, "concurrency", insights.DefaultConcurrency, "Maximum parallel model calls")
	rootCmd.AddCommand(refreshInsightsCmd)
}

func runRefreshInsights(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(config.Config{})
	if err != nil {
		return err
	}
	if err := requireEnv(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}
	if err := requireEnv(cfg.APIKey, "GEMINI_API_KEY"); err != nil {
		return err
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() {
		if cErr := client.Close(); cErr != nil {
			log.Printf("failed to close LLM client: %v", cErr)
		}
	}()

	report, err := insights.NewRefresher(database, insights.NewGenerator(client), refreshConcurrency).Refresh(ctx)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintRefreshReport(report)
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d industries failed to refresh", len(report.Failed), len(report.Failed)+len(report.Refreshed))
	}
	return nil
}
