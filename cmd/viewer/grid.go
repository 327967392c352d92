package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/cfrsolver/sdk/solver"
)

var rankOrder = [13]byte{'A', 'K', 'Q', 'J', 'T', '9', '8', '7', '6', '5', '4', '3', '2'}

// colorProfile detects the terminal's color support so shadeCell can
// fall back to plain text on terminals that can't render ANSI-256.
var colorProfile = termenv.ColorProfile()

// renderGrid draws the 13x13 starting-hand grid, each cell shaded by
// how often action is taken with that hand, from near-white (never)
// to a saturated color (always). Grounded on the ANSI-256 background
// coloring original_source/src/main_preflop.rs uses for the same
// grid, reworked through lipgloss instead of raw escape codes.
func renderGrid(grid [13][13]solver.Cell, action int) string {
	var b strings.Builder

	b.WriteString("    ")
	for _, r := range rankOrder {
		fmt.Fprintf(&b, " %c   ", r)
	}
	b.WriteString("\n")

	// Displayed rows/cols run Ace-high to deuce-low, but Summarize's
	// grid is indexed by equity.Rank (0=deuce..12=ace), so the display
	// position and the underlying rank run in opposite directions.
	for displayRow := 0; displayRow < 13; displayRow++ {
		fmt.Fprintf(&b, " %c  ", rankOrder[displayRow])
		for displayCol := 0; displayCol < 13; displayCol++ {
			idx := gridIndex(displayRow, displayCol)
			cell := grid[idx[0]][idx[1]]
			freq := 0.0
			if action < len(cell.Actions) {
				freq = cell.Actions[action]
			}
			b.WriteString(shadeCell(handLabel(displayRow, displayCol), freq))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// gridIndex maps a displayed (row,col) position, where row/col run
// Ace-high to deuce-low with suited combos above the diagonal and
// offsuit below it, to the [row][col] indexing Summarize produces
// (rank 0=deuce..12=ace, suited at [lo][hi], offsuit at [hi][lo]).
func gridIndex(displayRow, displayCol int) [2]int {
	rank1, rank2 := 12-displayRow, 12-displayCol
	switch {
	case displayRow == displayCol:
		return [2]int{rank1, rank1}
	case displayRow < displayCol: // suited
		lo, hi := rank1, rank2
		if lo > hi {
			lo, hi = hi, lo
		}
		return [2]int{lo, hi}
	default: // offsuit
		lo, hi := rank1, rank2
		if lo > hi {
			lo, hi = hi, lo
		}
		return [2]int{hi, lo}
	}
}

func handLabel(displayRow, displayCol int) string {
	r1, r2 := rankOrder[displayRow], rankOrder[displayCol]
	switch {
	case displayRow == displayCol:
		return fmt.Sprintf("%c%c ", r1, r1)
	case displayRow < displayCol:
		return fmt.Sprintf("%c%cs", r1, r2)
	default:
		return fmt.Sprintf("%c%co", r2, r1)
	}
}

// shadePalette is a 10-step ANSI-256 ramp from near-white (never
// taken) to a saturated red (always taken).
var shadePalette = [10]string{"255", "224", "217", "210", "203", "196", "160", "124", "88", "52"}

// shadeCell colors label's background on the shadePalette ramp scaled
// by freq in [0,1].
func shadeCell(label string, freq float64) string {
	if freq < 0 {
		freq = 0
	}
	if freq > 1 {
		freq = 1
	}
	if colorProfile == termenv.Ascii {
		return fmt.Sprintf("%-5s", label)
	}

	step := int(freq * float64(len(shadePalette)-1))
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(shadePalette[step])).
		Foreground(lipgloss.Color("0")).
		Width(5)
	return style.Render(label)
}
