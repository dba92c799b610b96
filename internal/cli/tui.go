package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tillvoss/archsketch/pkg/render"
	"github.com/tillvoss/archsketch/pkg/sketch"
)

// nudgeStep is how far arrow keys move a node, in canvas units.
const nudgeStep = 10.0

// Editor styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// editorModel is the bubbletea model for the diagram editor. It owns a
// positioned graph and maps between canvas units and terminal cells.
// Manual moves write positions straight into the graph; the automatic
// layout is never re-applied.
type editorModel struct {
	graph  *sketch.Graph
	width  float64 // canvas width in canvas units
	height float64
	output string

	termW    int // drawable area in cells
	termH    int
	selected int // index into graph.Nodes(), -1 for none
	dragging *sketch.Node
	dirty    bool
	saved    bool
	status   string
}

func newEditorModel(g *sketch.Graph, width, height float64, output string) editorModel {
	return editorModel{
		graph:    g,
		width:    width,
		height:   height,
		output:   output,
		termW:    80,
		termH:    24,
		selected: 0,
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.WindowSizeMsg:
		m.termW = msg.Width
		m.termH = msg.Height - 4 // header and footer rows
		if m.termH < 5 {
			m.termH = 5
		}
	}
	return m, nil
}

func (m editorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nodes := m.graph.Nodes()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		if len(nodes) > 0 {
			m.selected = (m.selected + 1) % len(nodes)
			m.status = ""
		}
	case "shift+tab":
		if len(nodes) > 0 {
			m.selected = (m.selected - 1 + len(nodes)) % len(nodes)
			m.status = ""
		}
	case "up", "down", "left", "right":
		if m.selected >= 0 && m.selected < len(nodes) {
			n := nodes[m.selected]
			switch msg.String() {
			case "up":
				n.Y -= nudgeStep
			case "down":
				n.Y += nudgeStep
			case "left":
				n.X -= nudgeStep
			case "right":
				n.X += nudgeStep
			}
			m.clamp(n)
			m.dirty = true
			m.status = ""
		}
	case "s":
		if err := sketch.WriteGraphFile(m.graph, m.output); err != nil {
			m.status = StyleWarning.Render("save failed: " + err.Error())
		} else {
			m.status = StyleSuccess.Render("saved " + m.output)
			m.dirty = false
			m.saved = true
		}
	}
	return m, nil
}

func (m editorModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := m.toCanvas(msg.X, msg.Y-2) // canvas starts below the header

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if n, i := m.hit(x, y); n != nil {
			m.dragging = n
			m.selected = i
			m.status = ""
		}
	case tea.MouseActionMotion:
		if m.dragging != nil {
			m.dragging.X = x
			m.dragging.Y = y
			m.clamp(m.dragging)
			m.dirty = true
		}
	case tea.MouseActionRelease:
		m.dragging = nil
	}
	return m, nil
}

// hit returns the node under the canvas point, or nil. The closest node
// within the hit radius wins, so overlapping nodes stay addressable.
func (m editorModel) hit(x, y float64) (*sketch.Node, int) {
	var best *sketch.Node
	bestIdx := -1
	bestDist := render.HitRadius
	for i, n := range m.graph.Nodes() {
		d := math.Hypot(n.X-x, n.Y-y)
		if d <= bestDist {
			best = n
			bestIdx = i
			bestDist = d
		}
	}
	return best, bestIdx
}

// clamp keeps a node inside the canvas.
func (m editorModel) clamp(n *sketch.Node) {
	n.X = math.Min(math.Max(n.X, 0), m.width)
	n.Y = math.Min(math.Max(n.Y, 0), m.height)
}

// toCanvas converts a terminal cell to canvas coordinates.
func (m editorModel) toCanvas(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) / float64(m.termW) * m.width,
		(float64(cy) + 0.5) / float64(m.termH) * m.height
}

// toCell converts canvas coordinates to a terminal cell.
func (m editorModel) toCell(x, y float64) (int, int) {
	cx := int(x / m.width * float64(m.termW))
	cy := int(y / m.height * float64(m.termH))
	if cx < 0 {
		cx = 0
	}
	if cx >= m.termW {
		cx = m.termW - 1
	}
	if cy < 0 {
		cy = 0
	}
	if cy >= m.termH {
		cy = m.termH - 1
	}
	return cx, cy
}

func (m editorModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s  %s", StyleTitle.Render("archsketch edit"),
		StyleDim.Render(fmt.Sprintf("%d components, %d connections", m.graph.NodeCount(), m.graph.EdgeCount())))
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
	} else {
		hint := "drag move  tab select  arrows nudge  s save  q quit"
		if m.dirty {
			hint += "  " + StyleWarning.Render("unsaved changes")
		}
		b.WriteString(StyleDim.Render(hint))
	}
	return b.String()
}

// renderCanvas draws edges and nodes onto a cell grid. Styling is held
// per cell so wide ANSI sequences never shift grid columns.
func (m editorModel) renderCanvas() string {
	grid := make([][]rune, m.termH)
	styles := make([][]*lipgloss.Style, m.termH)
	for i := range grid {
		grid[i] = make([]rune, m.termW)
		styles[i] = make([]*lipgloss.Style, m.termW)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	set := func(cx, cy int, r rune, st *lipgloss.Style) {
		if cx < 0 || cx >= m.termW || cy < 0 || cy >= m.termH {
			return
		}
		grid[cy][cx] = r
		styles[cy][cx] = st
	}

	for _, e := range m.graph.Edges() {
		from, okFrom := m.graph.Node(e.From)
		to, okTo := m.graph.Node(e.To)
		if !okFrom || !okTo {
			continue
		}
		x0, y0 := m.toCell(from.X, from.Y)
		x1, y1 := m.toCell(to.X, to.Y)
		plotLine(x0, y0, x1, y1, func(cx, cy int) {
			set(cx, cy, '·', &listDimStyle)
		})
	}

	nodes := m.graph.Nodes()
	for i, n := range nodes {
		cx, cy := m.toCell(n.X, n.Y)
		st := lipgloss.NewStyle().Foreground(lipgloss.Color(n.Kind.Color()))
		marker := '●'
		if i == m.selected {
			st = st.Bold(true)
			marker = '◉'
		}
		set(cx, cy, marker, &st)

		label := n.Label
		labelStyle := listNormalStyle
		if i == m.selected {
			labelStyle = listSelectedStyle
		}
		for j, r := range label {
			set(cx+2+j, cy, r, &labelStyle)
		}
	}

	var b strings.Builder
	for y := 0; y < m.termH; y++ {
		for x := 0; x < m.termW; x++ {
			if st := styles[y][x]; st != nil {
				b.WriteString(st.Render(string(grid[y][x])))
			} else {
				b.WriteRune(grid[y][x])
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// plotLine visits the cells of a straight line (Bresenham).
func plotLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
