package main

import (
	"fmt"
	"os"

	"github.com/jonathan/career-coach/internal/builder"
	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/spf13/cobra"
)

// exportFlags are the export settings that can be given on the command line.
type exportFlags struct {
	format         string
	captureWidth   int
	padding        int
	settleTimeout  string
	settleDelay    string
	captureTimeout string
	chromePath     string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "Page format: A4, Letter or Legal (default A4)")
	cmd.Flags().IntVar(&f.captureWidth, "width", 0, "Preview surface width in CSS pixels (default 794)")
	cmd.Flags().IntVar(&f.padding, "padding", -1, "Preview surface padding in CSS pixels (default 32)")
	cmd.Flags().StringVar(&f.settleTimeout, "settle-timeout", "", "Max wait for the layout-complete signal (default 10s)")
	cmd.Flags().StringVar(&f.settleDelay, "settle-delay", "", "Extra wait after the layout-complete signal")
	cmd.Flags().StringVar(&f.captureTimeout, "capture-timeout", "", "Max duration of one capture (default 30s)")
	cmd.Flags().StringVar(&f.chromePath, "chrome", "", "Path to the Chrome/Chromium binary")
}

// asConfig returns the flag values as a Config; unset flags stay empty.
func (f *exportFlags) asConfig() config.Config {
	cfg := config.Config{
		PageFormat:     f.format,
		CaptureWidthPx: f.captureWidth,
		SettleTimeout:  f.settleTimeout,
		SettleDelay:    f.settleDelay,
		CaptureTimeout: f.captureTimeout,
		ChromePath:     f.chromePath,
	}
	if f.padding >= 0 {
		padding := f.padding
		cfg.PaddingPx = &padding
	}
	return cfg
}

// loadConfig merges flags over the optional config file and validates the result.
func loadConfig(flags config.Config) (*config.Config, error) {
	merged := flags
	if configFile != "" {
		fileCfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		merged = flags.MergeWithDefaults(*fileCfg)
		if fileCfg.Verbose {
			merged.Verbose = true
		}
	}
	if merged.APIKey == "" {
		merged.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if merged.DatabaseURL == "" {
		merged.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if verbose {
		merged.Verbose = true
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// builderOptions wires resolved export settings into a headless capturer.
func builderOptions(cfg *config.Config) builder.Options {
	settings := cfg.Export()
	capturer := raster.NewBrowserCapturer(raster.CaptureOptions{
		SettleTimeout: settings.SettleTimeout,
		SettleDelay:   settings.SettleDelay,
		ViewportWidth: settings.CaptureWidthPx,
		Timeout:       settings.CaptureTimeout,
		ExecPath:      settings.ChromePath,
		Verbose:       cfg.Verbose,
	})
	return builder.Options{
		Capturer: capturer,
		Format:   settings.Format,
		Preview: rendering.PreviewOptions{
			WidthPx:   settings.CaptureWidthPx,
			PaddingPx: settings.PaddingPx,
		},
		Verbose: cfg.Verbose,
	}
}

func requireEnv(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s environment variable is required", name)
	}
	return nil
}
