package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twophase"
)

var (
	playScramble string
	playInterval time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [facelets]",
	Short: "Animate a solution step by step",
	Long: `Solve a cube and play the solution on a colored net.

Keys:
  SPACE/n/right - next move
  b/left        - previous move
  p             - play/pause
  r             - back to the start
  +/-           - faster/slower
  q/Esc         - quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playScramble, "scramble", "", "Scramble to apply to a solved cube")
	playCmd.Flags().DurationVar(&playInterval, "interval", 700*time.Millisecond, "Delay between moves when playing")
}

func runPlay(cmd *cobra.Command, args []string) error {
	c, err := cubeFromInput(args, playScramble)
	if err != nil {
		return err
	}

	t, err := loadTables(cmd.Context())
	if err != nil {
		return err
	}
	solver, err := newSolver(t)
	if err != nil {
		return err
	}
	sol, err := solveWithTimeout(solver, c, cfg.Solver.Timeout)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newPlayModel(c, sol, playInterval), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

type playTickMsg struct{ seq int }

// playModel shows the cube after the first index moves of the solution.
type playModel struct {
	start    *twophase.Cube
	cube     *twophase.Cube
	sol      *twophase.Solution
	moves    []twophase.Move
	index    int
	playing  bool
	interval time.Duration
	seq      int // invalidates ticks scheduled before a pause
	quitting bool
}

func newPlayModel(start *twophase.Cube, sol *twophase.Solution, interval time.Duration) *playModel {
	return &playModel{
		start:    start.Clone(),
		cube:     start.Clone(),
		sol:      sol,
		moves:    sol.Moves(),
		interval: interval,
	}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

func (m *playModel) tick() tea.Cmd {
	seq := m.seq
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return playTickMsg{seq: seq}
	})
}

func (m *playModel) next() bool {
	if m.index >= len(m.moves) {
		return false
	}
	m.cube.Apply(m.moves[m.index])
	m.index++
	return true
}

func (m *playModel) prev() {
	if m.index == 0 {
		return
	}
	m.index--
	m.cube.Apply(m.moves[m.index].Inverse())
}

func (m *playModel) reset() {
	m.cube = m.start.Clone()
	m.index = 0
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right":
			m.next()

		case "b", "left":
			m.prev()

		case "r":
			m.reset()

		case "p":
			m.playing = !m.playing
			m.seq++
			if m.playing {
				if m.index >= len(m.moves) {
					m.reset()
				}
				return m, m.tick()
			}

		case "+", "=":
			m.interval = max(m.interval/2, 50*time.Millisecond)

		case "-":
			m.interval = min(m.interval*2, 5*time.Second)
		}

	case playTickMsg:
		if !m.playing || msg.seq != m.seq {
			return m, nil
		}
		if m.next() && m.index < len(m.moves) {
			return m, m.tick()
		}
		m.playing = false
	}

	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Two-Phase Solution"))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.cube))
	b.WriteString("\n")

	status := fmt.Sprintf("Move %d/%d", m.index, len(m.moves))
	if m.playing {
		status += " [PLAYING]"
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	phase := m.cube.Phase()
	if m.index < len(m.sol.Phase1) {
		b.WriteString(fmt.Sprintf("Working on: %s\n", phaseStyle.Render("Phase 1 (reduce)")))
	} else if !phase.IsComplete() {
		b.WriteString(fmt.Sprintf("Working on: %s\n", phaseStyle.Render("Phase 2 (solve)")))
	}
	b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render(phase.DisplayName())))
	b.WriteString("\n")

	if len(m.moves) > 0 {
		b.WriteString(renderMoves(m.moves, m.index))
		b.WriteString("\n")
	} else {
		b.WriteString("Nothing to do: the cube is solved\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("SPACE=next  b=back  p=play (%s)  r=reset  +/-=speed  q=quit", m.interval)))
	b.WriteString("\n")
	return b.String()
}
