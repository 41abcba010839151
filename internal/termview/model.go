// Package termview shows a running session in the terminal with bubbletea.
package termview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snakenet/internal/engine"
	"snakenet/internal/scene"
	"snakenet/internal/session"
)

// Cell size in map pixels. A terminal cell is about twice as tall as wide.
const (
	CellW = 8
	CellH = 16
)

// FrameMsg carries a captured frame from the tick goroutine.
type FrameMsg scene.Frame

// keys maps terminal keys to (player, direction).
var keys = map[string][2]int{
	"left":  {0, -1},
	"right": {0, 1},
	"a":     {1, -1},
	"d":     {1, 1},
}

var (
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pickupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	overStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type Model struct {
	steer *Steering
	frame scene.Frame
	ready bool
	plain bool // no colours, used by tests and dumb terminals
}

func New(steer *Steering) Model {
	return Model{steer: steer}
}

// Plain disables styling.
func (m Model) Plain() Model {
	m.plain = true
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		default:
			if pd, ok := keys[k]; ok && m.steer != nil {
				m.steer.Press(pd[0], pd[1])
			}
		}
	case FrameMsg:
		m.frame = scene.Frame(msg)
		m.ready = true
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "waiting for the first tick...\n"
	}
	f := m.frame
	cols, rows := f.Map.Width()/CellW, f.Map.Height()/CellH
	grid, owner := Grid(f, cols, rows)

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			b.WriteString(m.cell(grid[y][x], owner[y][x]))
		}
		b.WriteByte('\n')
	}
	for _, line := range f.HUD() {
		style := hudStyle
		if strings.HasPrefix(line, "GAME OVER") {
			style = overStyle
		}
		b.WriteString(m.style(style, line))
		b.WriteByte('\n')
	}
	b.WriteString("left/right and a/d steer, q quits\n")
	return b.String()
}

func (m Model) cell(r rune, owner int) string {
	s := string(r)
	switch {
	case owner >= 0:
		c := m.frame.Snakes[owner].Color
		return m.style(lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))), s)
	case r == '#':
		return m.style(wallStyle, s)
	case r == '+' || r == '>' || r == '<':
		return m.style(pickupStyle, s)
	}
	return s
}

func (m Model) style(st lipgloss.Style, s string) string {
	if m.plain {
		return s
	}
	return st.Render(s)
}

var pickupRunes = map[session.PickupKind]rune{
	session.PickupGrow:  '+',
	session.PickupSpeed: '>',
	session.PickupSlow:  '<',
}

// Grid rasterises f into cols x rows cells. owner holds the index into
// f.Snakes of the snake drawn in a cell, or -1.
func Grid(f scene.Frame, cols, rows int) ([][]rune, [][]int) {
	grid := make([][]rune, rows)
	owner := make([][]int, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		owner[y] = make([]int, cols)
		for x := range grid[y] {
			owner[y][x] = -1
			grid[y][x] = ' '
			if !f.Map.IsFree(x*CellW+CellW/2, y*CellH+CellH/2) {
				grid[y][x] = '#'
			}
		}
	}

	put := func(px, py float64, r rune, who int) {
		x, y := int(px)/CellW, int(py)/CellH
		if px < 0 || py < 0 || x >= cols || y >= rows {
			return
		}
		grid[y][x] = r
		owner[y][x] = who
	}

	for _, p := range f.Pickups {
		put(p.X+session.PickupSize/2, p.Y+session.PickupSize/2, pickupRunes[p.Kind], -1)
	}
	half := engine.PartSize / 2
	for i, s := range f.Snakes {
		if !s.Visible() {
			continue
		}
		for j := len(s.Parts) - 1; j >= 0; j-- {
			r := 'o'
			if j == 0 {
				r = '@'
				if s.State == engine.StateCrashed {
					r = 'x'
				}
			}
			put(s.Parts[j].X+half, s.Parts[j].Y+half, r, i)
		}
	}
	return grid, owner
}
