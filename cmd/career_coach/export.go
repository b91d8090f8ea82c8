package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/career-coach/internal/builder"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export resume markdown to a paginated PDF",
	Long: `Renders resume markdown (or sections, combined first) in headless Chrome,
captures the preview surface and writes it as a multi-page PDF.
Requires Chrome/Chromium to be installed.`,
	RunE: runExport,
}

var (
	exportMarkdownFile string
	exportSectionsFile string
	exportName         string
	exportOutputFile   string
	exportCmdFlags     exportFlags
)

func init() {
	exportCmd.Flags().StringVarP(&exportMarkdownFile, "markdown", "m", "", "Path to resume markdown file")
	exportCmd.Flags().StringVarP(&exportSectionsFile, "sections", "s", "", "Path to resume sections JSON file")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "Name for the contact heading (with --sections)")
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Output PDF path (default: resume.pdf)")
	exportCmdFlags.register(exportCmd)

	exportCmd.MarkFlagsMutuallyExclusive("markdown", "sections")
	exportCmd.MarkFlagsOneRequired("markdown", "sections")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(exportCmdFlags.asConfig())
	if err != nil {
		return err
	}

	markdown, err := exportSource()
	if err != nil {
		return err
	}
	if strings.TrimSpace(markdown) == "" {
		return fmt.Errorf("nothing to export: the resume is empty")
	}

	opts := builderOptions(cfg)
	exporter := raster.NewExporter(opts.Capturer, opts.Format, raster.WithVerbose(cfg.Verbose))

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	var observe raster.Observer
	if cfg.Verbose {
		observe = printer.StateTracer()
	}

	result, err := builder.Render(context.Background(), rendering.NewPreviewer(opts.Preview), exporter, markdown, observe)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := exportOutputFile
	if out == "" {
		out = result.Filename
	}
	if err := writeOutput(out, result.PDF); err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintExport(result, out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d pages)\n", out, result.PageCount) //nolint:errcheck
	return nil
}

// exportSource returns the markdown to export from --markdown or --sections.
func exportSource() (string, error) {
	if exportMarkdownFile != "" {
		content, err := os.ReadFile(exportMarkdownFile)
		if err != nil {
			return "", fmt.Errorf("failed to read markdown file: %w", err)
		}
		return string(content), nil
	}

	sections, err := readSections(exportSectionsFile)
	if err != nil {
		return "", err
	}
	return rendering.Combine(*sections, exportName), nil
}
