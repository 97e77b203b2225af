package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/fxgold/internal/app"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for secondary text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for fatal errors.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// WarningStyle for the no-data notice.
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	// SuccessStyle for written files.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// FormatChange formats a percentage change with an up or down marker.
func FormatChange(change decimal.Decimal) string {
	s := change.StringFixed(2) + "%"

	switch change.Sign() {
	case 1:
		return "+" + s + " ▲"
	case -1:
		return s + " ▼"
	default:
		return s
	}
}

// RenderSummary formats the per-series statistics, the skipped instruments
// and the chart path.
func RenderSummary(result *app.Result) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Exchange Rates vs Gold Price, " + result.DateRange.String()))
	s.WriteString("\n\n")

	for _, summary := range result.Summaries {
		fmt.Fprintf(&s, "%-16s %4d rows  %s to %s  first %s  last %s  min %s  max %s  %s\n",
			summary.Label,
			summary.Rows,
			summary.FirstDate.Format(marketdata.DayLayout),
			summary.LastDate.Format(marketdata.DayLayout),
			summary.First.StringFixed(4),
			summary.Last.StringFixed(4),
			summary.Min.StringFixed(4),
			summary.Max.StringFixed(4),
			FormatChange(summary.ChangePct))
	}

	s.WriteString(RenderFailures(result.Report))

	if result.ChartPath != "" {
		s.WriteString("\n")
		s.WriteString(SuccessStyle.Render("Chart saved to " + result.ChartPath))
		s.WriteString("\n")
	}

	return s.String()
}

// RenderFailures lists the instruments left out of the chart.
func RenderFailures(report *marketdata.FetchReport) string {
	if report == nil {
		return ""
	}

	failed := report.Failed()
	if len(failed) == 0 {
		return ""
	}

	var s strings.Builder

	s.WriteString("\n")
	s.WriteString(WarningStyle.Render(fmt.Sprintf("%d instrument(s) skipped:", len(failed))))
	s.WriteString("\n")

	for _, o := range failed {
		reason := fmt.Sprintf("error code %d", o.ErrorCode)
		if o.ErrorCode == 0 && o.Empty {
			reason = "no data"
		}

		symbol := o.Symbol
		if symbol == "" {
			symbol = "not offered"
		}

		s.WriteString(HelpStyle.Render(fmt.Sprintf("  %s (%s): %s", o.Label, symbol, reason)))
		s.WriteString("\n")
	}

	return s.String()
}
