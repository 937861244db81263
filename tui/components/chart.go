package components

import (
	"fmt"
	"math"
	"strings"
)

// chartBlocks maps a cell fill in eighths (0-8) to a block character.
var chartBlocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const chartAxisWidth = 8

// RenderChart draws data (oldest first) as a right-aligned column chart.
// The first line holds the centered title; the axis shows label(max) on
// the top row and label(min) on the bottom row. The floor is zero unless
// the data goes negative.
func RenderChart(data []float64, width, height int, title string, label func(float64) string) string {
	width = max(width, chartAxisWidth+2)
	rows := max(height, 4) - 1
	cols := width - chartAxisWidth

	lines := make([]string, 0, rows+1)
	lines = append(lines, centerText(title, width))

	if len(data) == 0 {
		for range rows {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}
	if len(data) > cols {
		data = data[len(data)-cols:]
	}

	lo, hi := 0.0, data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}

	// Column heights in eighths of a cell.
	levels := make([]int, len(data))
	for i, v := range data {
		levels[i] = int(math.Round((v - lo) / (hi - lo) * float64(rows*8)))
	}

	pad := strings.Repeat(" ", cols-len(data))
	for row := rows - 1; row >= 0; row-- {
		var b strings.Builder
		switch row {
		case rows - 1:
			b.WriteString(axisLabel(label(hi)))
		case 0:
			b.WriteString(axisLabel(label(lo)))
		default:
			b.WriteString(strings.Repeat(" ", chartAxisWidth))
		}
		b.WriteString(pad)
		for _, l := range levels {
			fill := min(max(l-row*8, 0), 8)
			b.WriteRune(chartBlocks[fill])
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func axisLabel(s string) string {
	s = fmt.Sprintf("%*s ", chartAxisWidth-1, s)
	if len(s) > chartAxisWidth {
		s = s[len(s)-chartAxisWidth:]
	}
	return s
}

// centerText centers s within the given width, padding with spaces.
func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}
