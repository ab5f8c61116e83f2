// Package viewer is a read-only terminal viewer for headered CSV tables,
// built on bubbletea and the bubbles table component.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shapestone/shape-csvtable/internal/config"
	"github.com/shapestone/shape-csvtable/pkg/csv"
)

// chrome is the number of terminal lines used around the table body:
// title, subtitle, border and help.
const chrome = 8

const minHeight = 3

// Model is the bubbletea model of the viewer: a focused, scrollable table
// plus a title and a row/column summary.
type Model struct {
	table  table.Model
	title  string
	rows   int
	cols   int
	height int
}

// New builds a viewer for h. Column widths fit their widest cell, capped at
// cfg.MaxColumnWidth; cfg.Height sets the visible row count until the
// terminal reports its size.
func New(h *csv.HeaderedTable, title string, cfg config.ViewConfig) Model {
	header := h.Header()

	columns := make([]table.Column, len(header))
	for i, name := range header {
		columns[i] = table.Column{Title: name, Width: lipgloss.Width(name)}
	}

	rows := make([]table.Row, 0, h.Len())
	for r := 0; r < h.Len(); r++ {
		cells, _ := h.Row(r)
		for i, cell := range cells {
			if w := lipgloss.Width(cell); w > columns[i].Width {
				columns[i].Width = w
			}
		}
		rows = append(rows, table.Row(cells))
	}

	for i := range columns {
		columns[i].Width = clamp(columns[i].Width, 1, cfg.MaxColumnWidth)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(cfg.Height, minHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#6B7280")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF8C42")).
		Bold(false)
	t.SetStyles(s)

	return Model{
		table:  t,
		title:  title,
		rows:   h.Len(),
		cols:   len(header),
		height: cfg.Height,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Init implements tea.Model. The viewer starts without a command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update resizes the table on window changes, quits on q, esc or ctrl+c, and
// passes navigation keys to the table.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-chrome, minHeight)
		m.table.SetHeight(m.height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the title, summary, table and help line.
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(m.title))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d rows × %d columns", m.rows, m.cols)))
	s.WriteString("\n")
	s.WriteString(BoxStyle.Render(m.table.View()))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(fmt.Sprintf("row %d/%d • ↑/↓: navigate • pgup/pgdn: page • q: quit", m.position(), m.rows)))

	return s.String()
}

// position is the 1-based selected row, or 0 for an empty table.
func (m Model) position() int {
	if m.rows == 0 {
		return 0
	}
	return m.table.Cursor() + 1
}

// Selected returns the cells of the highlighted row, or nil when the table
// has no rows.
func (m Model) Selected() []string {
	row := m.table.SelectedRow()
	if row == nil {
		return nil
	}
	return []string(row)
}
