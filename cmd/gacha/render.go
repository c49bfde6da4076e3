package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/xtding233/gacha-backend/internal/draw"
	"github.com/xtding233/gacha-backend/internal/gacha"
)

var (
	tierStyles = map[gacha.Tier]lipgloss.Style{
		gacha.TierN:      lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		gacha.TierNPlus:  lipgloss.NewStyle().Foreground(lipgloss.Color("#BFBFBF")),
		gacha.TierR:      lipgloss.NewStyle().Foreground(lipgloss.Color("#4FA3FF")),
		gacha.TierRPlus:  lipgloss.NewStyle().Foreground(lipgloss.Color("#36CFC9")),
		gacha.TierSR:     lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true),
		gacha.TierSRPlus: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
	}
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

func renderResult(w io.Writer, res draw.Result, currency string) {
	for i, o := range res.Outcomes {
		label := tierStyles[o.Tier].Render(fmt.Sprintf("%-12s", o.Label()))
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, label, mutedStyle.Render(o.Item))
	}
	if res.Message != "" {
		fmt.Fprintln(w, messageStyle.Render(res.Message))
	}
	fmt.Fprintf(w, "draws: %d  spend: %d %s\n", res.DrawCount, res.TotalSpend, currency)
	fmt.Fprintf(w, "collected (%d): %s\n", len(res.Collected), list(res.Collected))
	fmt.Fprintf(w, "remaining (%d): %s\n", len(res.Remaining), list(res.Remaining))
}

func renderStats(w io.Writer, mode string, trials int, st gacha.Stats, spend int, currency string) {
	fmt.Fprintf(w, "mode=%s trials=%d\n", mode, trials)
	fmt.Fprintf(w, "draws to complete: mean %.1f  sd %.1f  p50 %.0f  p90 %.0f  p99 %.0f\n",
		st.Mean, st.StdDev, st.P50, st.P90, st.P99)
	fmt.Fprintf(w, "expected spend: %d %s\n", spend, currency)
	if st.Truncated > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d trials hit the draw cap before completing", st.Truncated)))
	}
}

func list(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
