package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/career-coach/internal/builder"
	"github.com/jonathan/career-coach/internal/career"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/server"
	"github.com/jonathan/career-coach/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveExportFlags exportFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing onboarding, industry insights, the resume
builder with PDF export, and cover letters. Requires DATABASE_URL,
GEMINI_API_KEY and JWT_SECRET.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveExportFlags.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveExportFlags.asConfig())
	if err != nil {
		return err
	}
	if err := requireEnv(cfg.DatabaseURL, "DATABASE_URL"); err != nil {
		return err
	}
	if err := requireEnv(cfg.APIKey, "GEMINI_API_KEY"); err != nil {
		return err
	}
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return err
	}

	client, err := llm.NewGeminiClient(ctx, llm.ConfigFromEnv(), cfg.APIKey)
	if err != nil {
		database.Close()
		return fmt.Errorf("failed to create LLM client: %w", err)
	}

	resumes := career.NewResumeService(database)
	srv, err := server.New(server.Config{
		Port:      servePort,
		JWT:       jwtConfig,
		RateLimit: ratelimit.LoadConfig(),
	}, server.Services{
		Profiles:     career.NewProfileService(database, insights.NewGenerator(client)),
		Resumes:      resumes,
		CoverLetters: career.NewCoverLetterService(database, client),
		Builder:      builder.NewManager(builderOptions(cfg), resumes),
	})
	if err != nil {
		_ = client.Close()
		database.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	srv.OnShutdown(func() {
		if err := client.Close(); err != nil {
			log.Printf("failed to close LLM client: %v", err)
		}
	})
	srv.OnShutdown(database.Close)

	return srv.Start()
}
