package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Combine resume sections into markdown",
	Long:  "Reads resume sections (contact, summary, skills, experience, education, projects) from a JSON file and prints the combined resume markdown.",
	RunE:  runAssemble,
}

var (
	assembleSectionsFile string
	assembleName         string
	assembleOutputFile   string
)

func init() {
	assembleCmd.Flags().StringVarP(&assembleSectionsFile, "sections", "s", "", "Path to resume sections JSON file (required)")
	assembleCmd.Flags().StringVarP(&assembleName, "name", "n", "", "Name for the contact heading")
	assembleCmd.Flags().StringVarP(&assembleOutputFile, "out", "o", "", "Write markdown to this file instead of stdout")

	if err := assembleCmd.MarkFlagRequired("sections"); err != nil {
		panic(fmt.Sprintf("failed to mark sections flag as required: %v", err))
	}

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, _ []string) error {
	sections, err := readSections(assembleSectionsFile)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintSections(sections)
	}

	markdown := rendering.Combine(*sections, assembleName)
	if assembleOutputFile == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return err
	}
	return writeOutput(assembleOutputFile, []byte(markdown+"\n"))
}

// readSections loads and validates a sections JSON file.
func readSections(path string) (*types.ResumeSections, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}

	if err := schemas.Validate(schemas.ResumeSections, string(content)); err != nil {
		return nil, fmt.Errorf("invalid sections file: %w", err)
	}

	var sections types.ResumeSections
	if err := json.Unmarshal(content, &sections); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections JSON: %w", err)
	}
	return &sections, nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
