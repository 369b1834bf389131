package components

import (
	"fmt"
	"strings"

	"pawtally/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color)

	var buf strings.Builder
	buf.Grow(len(values) * 4)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a vertical bar chart. Labels are drawn under the
// first and last bars. Falls back to a Sparkline when the area is too
// small for full bars.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	n := len(values)
	if n == 0 {
		return ""
	}
	if width < 15 || height < 3 || n > width-8 {
		return Sparkline(values, color)
	}

	t := theme.Active

	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	yLabel := formatChartLabel(maxVal)
	yLabelW := len(yLabel) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := (chartW - (n-1)*gap) / n
	if barW < 1 {
		barW = 1
	}
	if barW > 4 {
		barW = 4
	}
	axisLen := n*barW + (n-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	barStyle := lipgloss.NewStyle().Foreground(color)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := maxVal * float64(row) / float64(height)
		rowBottom := maxVal * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = yLabel
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			switch {
			case v >= rowTop && v > 0:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * float64(len(sparkBlocks)))
				if idx >= len(sparkBlocks) {
					idx = len(sparkBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				b.WriteString(barStyle.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(strings.Repeat(" ", barW))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n && n > 1 {
		first := labels[0]
		last := labels[n-1]
		pad := axisLen - len(first) - len(last)
		if pad > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", yLabelW+1))
			b.WriteString(axisStyle.Render(first + strings.Repeat(" ", pad) + last))
		}
	}

	return b.String()
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 10:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
