package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/explain"
	"github.com/matzehuels/marbles/pkg/trace"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the interactive stage browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var shared optionFlags

	cmd := &cobra.Command{
		Use:   "inspect [trace.json|-]",
		Short: "Browse the stages and values of a trace",
		Long: `Browse the stages and values of a trace.

Move between stages with ↑/↓, pick a value with tab and expand or collapse
it with enter. Press a to expand every value of the current stage.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, &shared)
			if err != nil {
				return err
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			raw, err := c.readInput(args[0])
			if err != nil {
				return err
			}
			events, decodeErr := trace.Parse(raw, opts.DecodeOptions()...)
			if decodeErr != nil {
				printWarning("Trace could not be decoded: %s", errors.UserMessage(decodeErr))
			}
			sections := explain.Build(events, opts.ExplainOptions())
			if len(sections) == 0 {
				printInfo("No pipeline stages to display.")
				return nil
			}
			return runInspect(cmd.Context(), args[0], sections)
		},
	}

	shared.register(cmd)
	return cmd
}

func runInspect(ctx context.Context, title string, sections []explain.Section) error {
	p := tea.NewProgram(NewInspectModel(title, sections), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// =============================================================================
// InspectModel - Interactive stage browser
// =============================================================================

// InspectModel is the bubbletea model for browsing explanation sections.
type InspectModel struct {
	Title    string
	Sections []explain.Section
	Cursor   int
	// Block is the selected value of the current stage, or -1.
	Block    int
	Expanded map[string]bool
	Height   int
	Offset   int
}

// NewInspectModel creates a browser positioned on the first stage.
func NewInspectModel(title string, sections []explain.Section) InspectModel {
	return InspectModel{
		Title:    title,
		Sections: sections,
		Block:    firstBlock(sections, 0),
		Expanded: make(map[string]bool),
		Height:   10,
	}
}

func firstBlock(sections []explain.Section, i int) int {
	if i < len(sections) && len(sections[i].Blocks) > 0 {
		return 0
	}
	return -1
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Block = firstBlock(m.Sections, m.Cursor)
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sections)-1 {
				m.Cursor++
				m.Block = firstBlock(m.Sections, m.Cursor)
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "tab", "right", "l":
			if n := len(m.current().Blocks); n > 0 {
				m.Block = (m.Block + 1) % n
			}
		case "shift+tab", "left", "h":
			if n := len(m.current().Blocks); n > 0 {
				m.Block = (m.Block - 1 + n) % n
			}
		case "enter", " ":
			if m.Block >= 0 {
				m.Expanded = toggled(m.Expanded, m.current().Blocks[m.Block].ID)
			}
		case "a":
			m.Expanded = expandAll(m.Expanded, m.current().Blocks)
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height / 3
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InspectModel) current() explain.Section {
	if len(m.Sections) == 0 {
		return explain.Section{}
	}
	return m.Sections[m.Cursor]
}

// toggled returns a copy of set with id flipped, so models stay values.
func toggled(set map[string]bool, id string) map[string]bool {
	out := make(map[string]bool, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out[id] = !set[id]
	return out
}

func expandAll(set map[string]bool, blocks []explain.Block) map[string]bool {
	out := make(map[string]bool, len(set)+len(blocks))
	for k, v := range set {
		out[k] = v
	}
	for _, b := range blocks {
		out[b.ID] = true
	}
	return out
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ stage  tab value  ⏎ expand  a expand all  q quit"))
	b.WriteString("\n\n")
	b.WriteString(m.stageTable())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sections))))
	b.WriteString("\n\n")
	b.WriteString(m.detail())

	return b.String()
}

func (m InspectModel) stageTable() string {
	end := min(m.Offset+m.Height, len(m.Sections))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Sections[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(i + 1), s.Name, s.Class, string(s.Kind)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("", "#", "Stage", "Operator", "Signal").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Sections) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if m.Sections[idx].Kind == trace.KindError {
				base = base.Foreground(colorRed)
			}
			if idx == m.Cursor {
				return base.Bold(true)
			}
			if col == 1 {
				return base.Foreground(colorDim)
			}
			return base
		})

	return t.Render()
}

// detail renders the explanation of the current stage.
func (m InspectModel) detail() string {
	s := m.current()
	var b strings.Builder

	b.WriteString(listSelectedStyle.Render(s.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(s.Description))
	b.WriteString("\n\n")
	b.WriteString(StyleHighlight.Render("Pipeline Output"))
	b.WriteString("\n")

	if !s.Structured {
		b.WriteString(listNormalStyle.Render(s.Inline))
		b.WriteString("\n")
		return b.String()
	}

	for i, blk := range s.Blocks {
		icon := iconCollapsed
		if m.Expanded[blk.ID] {
			icon = iconExpanded
		}
		line := fmt.Sprintf("%s %s", icon, truncate(blk.Title, maxOutputWidth))
		if i == m.Block {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
		if m.Expanded[blk.ID] {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(blk.Body))
			b.WriteString("\n")
		}
	}
	return b.String()
}
