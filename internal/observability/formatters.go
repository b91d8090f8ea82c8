// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/raster"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// StateTracer returns an export observer that prints each state on its own line.
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) StateTracer() raster.Observer {
	return func(state raster.ExportState) {
		fmt.Fprintf(p.out, "  → %s\n", state)
	}
}

// PrintSections outputs which resume sections carry content.
func (p *Printer) PrintSections(sections *types.ResumeSections) {
	if sections == nil {
		return
	}

	var sb strings.Builder
	mark := func(name string, filled bool) {
		box := "☐"
		if filled {
			box = "☑"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", box, name))
	}
	mark("Contact", !sections.Contact.IsEmpty())
	mark("Summary", strings.TrimSpace(sections.Summary) != "")
	mark("Skills", strings.TrimSpace(sections.Skills) != "")
	sb.WriteString(fmt.Sprintf("Experience: %d  Education: %d  Projects: %d",
		countEntries(sections.Experience), countEntries(sections.Education), countEntries(sections.Projects)))

	p.printBox("RESUME SECTIONS", sb.String())
}

func countEntries(entries []types.TimelineEntry) int {
	n := 0
	for _, e := range entries {
		if !e.IsEmpty() {
			n++
		}
	}
	return n
}

// PrintExport outputs a summary of a finished export.
func (p *Printer) PrintExport(result *raster.Result, path string) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Capture:  %dx%d px\n", result.ImageWidth, result.ImageHeight))
	sb.WriteString(fmt.Sprintf("Pages:    %d\n", result.PageCount))
	sb.WriteString(fmt.Sprintf("Size:     %s", humanBytes(len(result.PDF))))

	p.printBox("PDF EXPORT", sb.String())
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// PrintInsight outputs a human-readable summary of an industry insight.
func (p *Printer) PrintInsight(insight *types.IndustryInsight) {
	if insight == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry: %s\n", insight.Industry))
	sb.WriteString(fmt.Sprintf("Demand:   %s  Outlook: %s  Growth: %.1f%%\n",
		insight.DemandLevel, insight.MarketOutlook, insight.GrowthRate))
	writeList(&sb, "Top Skills", insight.TopSkills)
	writeList(&sb, "Key Trends", insight.KeyTrends)

	p.printBox("INDUSTRY INSIGHT", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + title + ":\n")
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintRefreshReport outputs the outcome of an insight refresh run.
func (p *Printer) PrintRefreshReport(report *insights.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Refreshed: %d  Failed: %d\n", len(report.Refreshed), len(report.Failed)))
	for _, industry := range report.Refreshed {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", industry))
	}

	failed := make([]string, 0, len(report.Failed))
	for industry := range report.Failed {
		failed = append(failed, industry)
	}
	sort.Strings(failed)
	for _, industry := range failed {
		sb.WriteString(fmt.Sprintf("  ✗ %s: %s\n", industry, report.Failed[industry]))
	}

	p.printBox("INSIGHT REFRESH", strings.TrimSuffix(sb.String(), "\n"))
}
