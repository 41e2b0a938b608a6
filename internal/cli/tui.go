package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/injectograph/injectograph/pkg/digraph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeListModel - Interactive entry point selection
// =============================================================================

// NodeListModel is the bubbletea model for picking entry points from a
// built graph. Multiple nodes can be marked; enter confirms the selection.
type NodeListModel struct {
	Nodes    []digraph.Node
	outgoing map[string]int
	incoming map[string]int
	marked   map[int]bool
	Cursor   int
	Confirm  bool
	Height   int
	Offset   int
}

// NewNodeListModel creates a node list model over the graph's nodes.
func NewNodeListModel(g digraph.Graph) NodeListModel {
	outgoing := make(map[string]int, len(g.Nodes))
	incoming := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		outgoing[e.From]++
		incoming[e.To]++
	}
	return NodeListModel{
		Nodes:    g.Nodes,
		outgoing: outgoing,
		incoming: incoming,
		marked:   make(map[int]bool),
		Height:   15,
	}
}

// Selected returns the IDs of the marked nodes in display order.
func (m NodeListModel) Selected() []string {
	var ids []string
	for i, n := range m.Nodes {
		if m.marked[i] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (m NodeListModel) Init() tea.Cmd {
	return nil
}

func (m NodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if m.marked[m.Cursor] {
				delete(m.marked, m.Cursor)
			} else {
				m.marked[m.Cursor] = true
			}
		case "enter":
			m.Confirm = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entry Points"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Nodes) {
		end = len(m.Nodes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Nodes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.marked[i] {
			mark = "●"
		}

		rows = append(rows, []string{
			cursor, mark, n.ID, n.Kind,
			fmt.Sprintf("%d", m.outgoing[n.ID]),
			fmt.Sprintf("%d", m.incoming[n.ID]),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Node", "Kind", "Deps", "Used by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.Nodes) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if m.marked[actualIdx] {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			if col >= 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d marked", m.Cursor+1, len(m.Nodes), len(m.marked))))

	return b.String()
}

// pickEntries runs the interactive node picker and returns the chosen
// entry point IDs. An aborted picker returns no entries.
func pickEntries(g digraph.Graph) ([]string, error) {
	model := NewNodeListModel(g)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return nil, fmt.Errorf("entry picker: %w", err)
	}
	m, ok := final.(NodeListModel)
	if !ok || !m.Confirm {
		return nil, nil
	}
	return m.Selected(), nil
}
