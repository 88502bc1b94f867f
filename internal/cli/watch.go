package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase"
)

var watchScanTimeout time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Track a GoCube and solve it live",
	Long: `Connect to a GoCube smart cube over Bluetooth and follow its moves.
The cube must be solved when the command starts.

Keys:
  s     - solve the current state
  r     - mark the physical cube as solved again
  f     - flash the cube's backlight
  q/Esc - quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchScanTimeout, "scan", 5*time.Second, "How long to scan for devices")
}

// Messages
type cubeMoveMsg struct{ move twophase.Move }
type cubePhaseMsg struct{ phase twophase.Phase }
type cubeBatteryMsg struct{ level int }
type watchSolvedMsg struct {
	sol *twophase.Solution
	err error
}

// watchModel follows a connected cube. Device callbacks run on the BLE
// goroutine and reach the model through events.
type watchModel struct {
	cube   *twophase.GoCube
	solver *twophase.Solver
	events chan tea.Msg

	moves    []twophase.Move
	phase    twophase.Phase
	battery  int
	solving  bool
	solution *twophase.Solution
	err      error
	quitting bool
}

func newWatchModel(g *twophase.GoCube, solver *twophase.Solver) *watchModel {
	m := &watchModel{
		cube:    g,
		solver:  solver,
		events:  make(chan tea.Msg, 100),
		phase:   twophase.PhaseSolved,
		battery: -1,
	}
	g.OnMove(func(mv twophase.Move) { m.send(cubeMoveMsg{mv}) })
	g.OnPhaseChange(func(p twophase.Phase) { m.send(cubePhaseMsg{p}) })
	g.OnBattery(func(level int) { m.send(cubeBatteryMsg{level}) })
	return m
}

// send drops the event if the UI has fallen behind.
func (m *watchModel) send(msg tea.Msg) {
	select {
	case m.events <- msg:
	default:
	}
}

func (m *watchModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.listen()
}

func (m *watchModel) solve() tea.Cmd {
	c := m.cube.Cube()
	return func() tea.Msg {
		sol, err := solveWithTimeout(m.solver, c, cfg.Solver.Timeout)
		return watchSolvedMsg{sol: sol, err: err}
	}
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "s":
			if !m.solving {
				m.solving = true
				m.err = nil
				return m, m.solve()
			}

		case "r":
			m.cube.Reset()
			m.moves = nil
			m.phase = twophase.PhaseSolved
			m.solution = nil
			if err := m.cube.ResetSolved(); err != nil {
				m.err = err
			}

		case "f":
			if err := m.cube.FlashBacklight(); err != nil {
				m.err = err
			}
		}

	case cubeMoveMsg:
		m.moves = append(m.moves, msg.move)
		m.solution = nil
		return m, m.listen()

	case cubePhaseMsg:
		m.phase = msg.phase
		return m, m.listen()

	case cubeBatteryMsg:
		m.battery = msg.level
		return m, m.listen()

	case watchSolvedMsg:
		m.solving = false
		m.solution = msg.sol
		m.err = msg.err
		if msg.sol != nil {
			logger.Debug("live solve", zap.Int("length", msg.sol.Len()))
		}
	}

	return m, nil
}

func (m *watchModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("GoCube Live Solver"))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Connected: %s", m.cube.DeviceName())
	if m.battery >= 0 {
		status += fmt.Sprintf(" (Battery: %d%%)", m.battery)
	}
	if !m.cube.IsConnected() {
		b.WriteString(errorStyle.Render("Disconnected"))
	} else {
		b.WriteString(statusStyle.Render(status))
	}
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.cube.Cube()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Cube State: %s\n", phaseStyle.Render(m.phase.DisplayName())))
	b.WriteString(fmt.Sprintf("Moves: %d\n", len(m.moves)))
	if len(m.moves) > 0 {
		b.WriteString(renderMoves(m.moves, len(m.moves)-1))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.solving:
		b.WriteString(statusStyle.Render("Solving..."))
		b.WriteString("\n")
	case m.solution != nil && m.solution.Len() == 0:
		b.WriteString(phaseStyle.Render("Already solved"))
		b.WriteString("\n")
	case m.solution != nil:
		b.WriteString(fmt.Sprintf("Solution (%d): %s\n", m.solution.Len(), moveStyle.Render(m.solution.String())))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s=solve  r=reset to solved  f=flash  q=quit"))
	b.WriteString("\n")
	return b.String()
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Build the tables before scanning so the TUI never waits on them.
	t, err := loadTables(cmd.Context())
	if err != nil {
		return err
	}
	solver, err := newSolver(t)
	if err != nil {
		return err
	}

	fmt.Println("Scanning for GoCube devices...")
	scanCtx, cancel := context.WithTimeout(cmd.Context(), watchScanTimeout+5*time.Second)
	devices, err := twophase.Scan(scanCtx, watchScanTimeout, twophase.WithLogger(logger))
	cancel()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(devices) == 0 {
		fmt.Println("No GoCube devices found.")
		fmt.Println()
		fmt.Println("To fix this:")
		fmt.Println("  1. Rotate your cube to wake it up")
		fmt.Println("  2. Make sure it's not connected to your phone")
		fmt.Println("  3. Run this command again")
		return nil
	}
	fmt.Printf("Found: %s\n", devices[0].Name)

	connCtx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	g, err := twophase.Connect(connCtx, devices[0], twophase.WithLogger(logger), twophase.WithMoveHistory(false))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer g.Close()

	p := tea.NewProgram(newWatchModel(g, solver), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
