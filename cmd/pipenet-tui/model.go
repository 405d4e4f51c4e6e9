package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/pipenet/pkg/grid"
	"github.com/dd0wney/pipenet/pkg/pipenet"
	"github.com/dd0wney/pipenet/pkg/placement"
	"github.com/dd0wney/pipenet/pkg/validation"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	gridBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Reverse(true)
	looseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	networkColors = []lipgloss.Color{"#FF5F87", "#5FD7FF", "#AFFF5F", "#FFD75F", "#D787FF", "#FF8700", "#00D7AF"}
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Place  key.Binding
	Facing key.Binding
	Rotate key.Binding
	Flip   key.Binding
	Wrench key.Binding
	Remove key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Place:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place")),
	Facing: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle facing")),
	Rotate: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotate loose")),
	Flip:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "flip loose")),
	Wrench: key.NewBinding(key.WithKeys("w", "enter"), key.WithHelp("w", "wrench")),
	Remove: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Facing, k.Wrench, k.Remove, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Place, k.Facing, k.Rotate, k.Flip},
		{k.Wrench, k.Remove, k.Quit},
	}
}

type model struct {
	ctrl       *placement.Controller
	cols, rows int
	cursor     grid.Point
	facing     grid.Facing
	networks   table.Model
	help       help.Model
	keys       keyMap
	message    string
	messageErr bool
}

func newModel(ctrl *placement.Controller, cols, rows int) model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Net", Width: 5},
			{Title: "Size", Width: 5},
			{Title: "Volume", Width: 8},
		}),
		table.WithHeight(rows),
	)
	m := model{
		ctrl:     ctrl,
		cols:     max(cols, 1),
		rows:     max(rows, 1),
		facing:   grid.North,
		networks: t,
		help:     help.New(),
		keys:     keys,
	}
	m.refresh()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor.Y = min(m.cursor.Y+1, m.rows-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor.Y = max(m.cursor.Y-1, 0)
		case key.Matches(msg, m.keys.Left):
			m.cursor.X = max(m.cursor.X-1, 0)
		case key.Matches(msg, m.keys.Right):
			m.cursor.X = min(m.cursor.X+1, m.cols-1)
		case key.Matches(msg, m.keys.Facing):
			m.facing = m.facing.Rotate()
			m.report(fmt.Sprintf("placing %s", m.facing), nil)
		case key.Matches(msg, m.keys.Place):
			m.place()
		case key.Matches(msg, m.keys.Rotate):
			m.turn(grid.Facing.Rotate)
		case key.Matches(msg, m.keys.Flip):
			m.turn(grid.Facing.Opposite)
		case key.Matches(msg, m.keys.Wrench):
			m.wrench()
		case key.Matches(msg, m.keys.Remove):
			m.remove()
		}
	}
	return m, nil
}

func (m *model) place() {
	id, err := m.ctrl.Place(validation.PlaceRequest{
		X:      m.cursor.X,
		Y:      m.cursor.Y,
		Facing: m.facing.String(),
	})
	m.report(fmt.Sprintf("placed segment %d", id), err)
}

// target picks the segment under the cursor that the next action applies
// to: one on the current facing's axis if there is one, else the first.
func (m *model) target() (placement.SegmentView, bool) {
	occupants := m.ctrl.At(m.cursor)
	if len(occupants) == 0 {
		return placement.SegmentView{}, false
	}
	for _, v := range occupants {
		if grid.Compatible(v.Facing, m.facing) {
			return v, true
		}
	}
	return occupants[0], true
}

// turn re-faces the loose segment under the cursor.
func (m *model) turn(next func(grid.Facing) grid.Facing) {
	v, ok := m.target()
	if !ok {
		m.report("", fmt.Errorf("nothing here"))
		return
	}
	f := next(v.Facing)
	m.report(fmt.Sprintf("segment %d now faces %s", v.ID, f), m.ctrl.Rotate(v.ID, f))
}

func (m *model) wrench() {
	v, ok := m.target()
	if !ok {
		m.report("", fmt.Errorf("nothing here"))
		return
	}
	anchored, err := m.ctrl.Wrench(v.ID)
	state := "loosened"
	if anchored {
		state = "anchored"
	}
	m.report(fmt.Sprintf("segment %d %s", v.ID, state), err)
}

func (m *model) remove() {
	v, ok := m.target()
	if !ok {
		m.report("", fmt.Errorf("nothing here"))
		return
	}
	m.report(fmt.Sprintf("removed segment %d", v.ID), m.ctrl.Remove(v.ID))
}

func (m *model) report(msg string, err error) {
	if err != nil {
		m.message, m.messageErr = err.Error(), true
	} else {
		m.message, m.messageErr = msg, false
	}
	m.refresh()
}

func (m *model) refresh() {
	snap := m.ctrl.Snapshot()
	rows := make([]table.Row, 0, len(snap.Networks))
	for _, n := range snap.Networks {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", n.ID),
			fmt.Sprintf("%d", len(n.Members)),
			fmt.Sprintf("%.1f", n.Volume),
		})
	}
	m.networks.SetRows(rows)
}

// glyph draws the segments of one cell.
func glyph(cell []placement.SegmentView) string {
	var vertical, horizontal bool
	var network pipenet.NetworkID
	anchored := false
	for _, v := range cell {
		if v.Facing.Axis() == grid.Vertical {
			vertical = true
		} else {
			horizontal = true
		}
		if v.Anchored {
			anchored = true
			network = v.Network
		}
	}

	var r string
	switch {
	case vertical && horizontal && anchored:
		r = "╬"
	case vertical && horizontal:
		r = "┼"
	case vertical && anchored:
		r = "║"
	case vertical:
		r = "│"
	case horizontal && anchored:
		r = "═"
	case horizontal:
		r = "─"
	default:
		return "·"
	}

	if !anchored {
		return looseStyle.Render(r)
	}
	color := networkColors[int(network)%len(networkColors)]
	return lipgloss.NewStyle().Foreground(color).Render(r)
}

func (m model) renderGrid() string {
	cells := make(map[grid.Point][]placement.SegmentView)
	for _, v := range m.ctrl.Snapshot().Segments {
		cells[v.Position] = append(cells[v.Position], v)
	}

	var b strings.Builder
	// North is up, so the highest row prints first.
	for y := m.rows - 1; y >= 0; y-- {
		for x := 0; x < m.cols; x++ {
			p := grid.Pt(x, y)
			g := glyph(cells[p])
			if p == m.cursor {
				g = cursorStyle.Render(g)
			}
			b.WriteString(g)
		}
		if y > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("pipenet  cursor %s  placing %s", m.cursor, m.facing)))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		gridBoxStyle.Render(m.renderGrid()),
		"  ",
		m.networks.View(),
	))
	s.WriteString("\n")

	if m.message != "" {
		if m.messageErr {
			s.WriteString(errorStyle.Render("  " + m.message))
		} else {
			s.WriteString(successStyle.Render("  " + m.message))
		}
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}
