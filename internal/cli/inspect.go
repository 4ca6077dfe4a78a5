package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/paupedrejon/conceptmap/pkg/plan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// inspectCommand creates the inspect command, an interactive node browser.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the nodes of a planned diagram",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := c.planFor(cmd.Context(), runner, args, &opts)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewNodeListModel(res.Plan), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.fromPlan, "from-plan", false, "treat the input as a RenderPlan JSON file")
	return cmd
}

// =============================================================================
// NodeListModel - Interactive node browser
// =============================================================================

// NodeListModel is the bubbletea model for browsing plan nodes.
type NodeListModel struct {
	Plan     *plan.RenderPlan
	Cursor   int
	Height   int
	Offset   int
	Expanded bool // show the selected node's details
}

// NewNodeListModel creates a new node list model.
func NewNodeListModel(p *plan.RenderPlan) NodeListModel {
	return NodeListModel{Plan: p, Height: 15}
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
			if m.Cursor < len(m.Plan.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeListModel) View() string {
	var b strings.Builder

	title := m.Plan.Title
	if title == "" {
		title = "Untitled"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(" " + listDimStyle.Render(fmt.Sprintf("(%s, %.0fx%.0f)", m.Plan.Template, m.Plan.CanvasWidth, m.Plan.CanvasHeight)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Plan.Nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Plan.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		sector := "-"
		if n.Sector > 0 {
			sector = strconv.Itoa(n.Sector)
		}
		rows = append(rows, []string{
			cursor,
			n.ID,
			n.DisplayLabel(),
			strconv.Itoa(n.Level),
			sector,
			fmt.Sprintf("%.0f,%.0f", n.X, n.Y),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("", "ID", "Label", "Level", "Sector", "Position").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Plan.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Plan.Nodes[idx].Root {
				base = base.Foreground(colorOK)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			if col >= 3 {
				return base.Foreground(colorMuted)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Plan.Nodes))))
	b.WriteString("\n")

	if m.Expanded && m.Cursor < len(m.Plan.Nodes) {
		b.WriteString("\n")
		b.WriteString(m.details(m.Plan.Nodes[m.Cursor]))
	}
	return b.String()
}

func (m NodeListModel) details(n plan.LayoutNode) string {
	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(n.DisplayLabel()) + "\n")
	field := func(k, v string) {
		if v != "" {
			b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("%-14s", k)) + StyleValue.Render(v) + "\n")
		}
	}
	field("description", n.Description)
	field("lines", strings.Join(n.Lines, " / "))
	field("box", fmt.Sprintf("%.1f x %.1f", n.Width, n.Height))

	// Sector templates derive the badge fields; show what is drawn.
	if s, ok := m.sectorOf(n.ID); ok {
		field("colour", s.Color)
		field("letter", s.Letter)
		field("characteristic", s.Characteristic)
		return b.String()
	}
	field("colour", n.Color)
	field("letter", n.Letter)
	field("characteristic", n.Characteristic)
	return b.String()
}

func (m NodeListModel) sectorOf(id string) (plan.Sector, bool) {
	for _, s := range m.Plan.Sectors {
		if s.NodeID == id {
			return s, true
		}
	}
	return plan.Sector{}, false
}
