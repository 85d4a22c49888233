// Package observability provides formatted output utilities for CLI
// status commands.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/caseforge/internal/coverage"
	"github.com/jonathan/caseforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxRowsPerDimension caps how many values one dimension shows
	maxRowsPerDimension = 12
)

// Printer handles formatted output for the status commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
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

// PrintCampaign outputs the campaign-level counters.
func (p *Printer) PrintCampaign(summary *types.CoverageSummary) {
	if summary == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Target total cases:  %d\n", summary.TargetTotalCases))
	sb.WriteString(fmt.Sprintf("Generation target:   %d\n", summary.GenerationTarget))
	sb.WriteString(fmt.Sprintf("Seed cases:          %d\n", summary.SeedCases))
	sb.WriteString(fmt.Sprintf("Issued:              %d\n", summary.Issued))
	sb.WriteString(fmt.Sprintf("Submitted:           %d\n", summary.Submitted))
	sb.WriteString(fmt.Sprintf("Remaining:           %d", summary.Remaining))
	p.printBox("Campaign", sb.String())
}

// PrintCoverage outputs per-dimension coverage with the largest gaps
// first inside each dimension.
func (p *Printer) PrintCoverage(summary *types.CoverageSummary) {
	if summary == nil {
		return
	}
	for _, dimension := range coverage.DimensionOrder() {
		values, ok := summary.Dimensions[dimension]
		if !ok {
			continue
		}
		var sb strings.Builder
		rows := 0
		for _, target := range coverage.TableFor(dimension) {
			row, ok := values[target.Key]
			if !ok {
				continue
			}
			if rows >= maxRowsPerDimension {
				sb.WriteString(fmt.Sprintf("... and %d more\n", len(values)-rows))
				break
			}
			sb.WriteString(fmt.Sprintf("%-28s %4d / %-6.1f gap %+.1f\n",
				target.Key, row.Current, row.TargetCount, -row.Gap))
			rows++
		}
		p.printBox(dimension, strings.TrimRight(sb.String(), "\n"))
	}
}
