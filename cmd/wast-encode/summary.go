package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	wastencode "github.com/wippyai/wast-encode"
	"github.com/wippyai/wast-encode/command"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#87CEEB")).
				Width(18)

	summaryCountStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#98FB98")).
				Align(lipgloss.Right).
				Width(8)

	summaryWarnStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B")).
				Align(lipgloss.Right).
				Width(8)
)

type summaryRow struct {
	label string
	count int
	warn  bool
}

func summaryRows(stats wastencode.Stats) []summaryRow {
	rows := make([]summaryRow, 0, len(command.Kinds)+5)
	for _, k := range command.Kinds {
		rows = append(rows, summaryRow{label: string(k), count: stats.Kinds[k]})
	}
	rows = append(rows,
		summaryRow{label: "unhandled", count: stats.Unhandled, warn: stats.Unhandled > 0},
		summaryRow{label: "skipped", count: stats.Skipped, warn: stats.Skipped > 0},
		summaryRow{label: "carried lines", count: stats.Carried},
		summaryRow{label: "pending bytes", count: stats.Pending, warn: stats.Pending > 0},
		summaryRow{label: "lines written", count: stats.Lines},
	)
	return rows
}

// renderSummary formats the run counters. Styling is only applied when the
// destination is a terminal.
func renderSummary(stats wastencode.Stats, styled bool) string {
	var b strings.Builder
	title := fmt.Sprintf("wast-encode: %d records", stats.Records)

	if !styled {
		b.WriteString(title)
		b.WriteByte('\n')
		for _, r := range summaryRows(stats) {
			fmt.Fprintf(&b, "  %-16s %8d\n", r.label, r.count)
		}
		return b.String()
	}

	b.WriteString(summaryTitleStyle.Render(title))
	b.WriteByte('\n')
	for _, r := range summaryRows(stats) {
		count := summaryCountStyle
		if r.warn {
			count = summaryWarnStyle
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			"  ",
			summaryLabelStyle.Render(r.label),
			count.Render(fmt.Sprint(r.count)),
		))
		b.WriteByte('\n')
	}
	return b.String()
}
