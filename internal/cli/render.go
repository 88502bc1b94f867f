package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/twophase"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var stickerStyles = map[twophase.Color]lipgloss.Style{
	twophase.White:  stickerStyle("255"),
	twophase.Yellow: stickerStyle("226"),
	twophase.Green:  stickerStyle("34"),
	twophase.Blue:   stickerStyle("21"),
	twophase.Red:    stickerStyle("196"),
	twophase.Orange: stickerStyle("208"),
}

func stickerStyle(c string) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(c))
}

// netLayout places faces on the printed net, by row of faces: U above F,
// then L F R B, then D below F. -1 is blank.
var netLayout = [3][4]int{
	{-1, 0, -1, -1},
	{4, 2, 1, 5},
	{-1, 3, -1, -1},
}

// renderNet draws the cube as a colored net, two cells per sticker.
func renderNet(c *twophase.Cube) string {
	var b strings.Builder
	for _, faces := range netLayout {
		for row := 0; row < 3; row++ {
			for _, face := range faces {
				if face < 0 {
					b.WriteString("       ")
					continue
				}
				for col := 0; col < 3; col++ {
					b.WriteString(stickerStyles[c.Sticker(face*9+row*3+col)].Render("  "))
				}
				b.WriteByte(' ')
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), " \n") + "\n"
}

// renderMoves renders a move list, highlighting the move at index current.
// Long lists show only a window of moves around current.
func renderMoves(moves []twophase.Move, current int) string {
	const window = 20
	start := 0
	if len(moves) > window && current > window/2 {
		start = min(current-window/2, len(moves)-window)
	}
	end := min(start+window, len(moves))

	var parts []string
	if start > 0 {
		parts = append(parts, "...")
	}
	for i := start; i < end; i++ {
		if i == current {
			parts = append(parts, currentMoveStyle.Render(moves[i].Notation()))
		} else {
			parts = append(parts, moveStyle.Render(moves[i].Notation()))
		}
	}
	if end < len(moves) {
		parts = append(parts, "...")
	}
	return strings.Join(parts, " ")
}
