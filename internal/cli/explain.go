package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/marbles/pkg/errors"
	"github.com/matzehuels/marbles/pkg/explain"
	"github.com/matzehuels/marbles/pkg/trace"
)

// maxOutputWidth bounds the Output column of the stage table.
const maxOutputWidth = 48

// explainCommand creates the explain command for printing stage explanations.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		asJSON     bool
		showValues bool
		shared     optionFlags
	)

	cmd := &cobra.Command{
		Use:   "explain [trace.json|-]",
		Short: "Explain every stage of a trace",
		Long: `Explain every stage of a trace.

Prints one row per pipeline stage with its operator and output, followed by
a description of each operator. Structured values are summarized; pass
--values to print them in full.`,
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
			sections := explain.Build(events, opts.ExplainOptions())

			out := cmd.OutOrStdout()
			if asJSON {
				return writeSectionsJSON(out, sections)
			}
			if decodeErr != nil {
				printWarning("Trace could not be decoded: %s", errors.UserMessage(decodeErr))
			}
			return writeExplanation(out, sections, showValues)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print sections as JSON")
	cmd.Flags().BoolVar(&showValues, "values", false, "print structured values in full")
	shared.register(cmd)

	return cmd
}

// writeExplanation prints the stage table, operator notes and, optionally,
// every structured value.
func writeExplanation(w io.Writer, sections []explain.Section, showValues bool) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, StyleDim.Render("No pipeline stages to display."))
		return err
	}

	var b strings.Builder
	b.WriteString(sectionTable(sections))
	b.WriteString("\n\n")
	b.WriteString(StyleTitle.Render("Operators"))
	b.WriteString("\n")
	for _, note := range operatorNotes(sections) {
		b.WriteString(note)
		b.WriteString("\n")
	}

	if showValues {
		for _, s := range sections {
			for _, blk := range s.Blocks {
				b.WriteString("\n")
				b.WriteString(StyleHighlight.Render(fmt.Sprintf("%s %s", s.Name, blk.ID)))
				b.WriteString("\n")
				b.WriteString(blk.Body)
				b.WriteString("\n")
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sectionTable renders one row per stage.
func sectionTable(sections []explain.Section) string {
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{
			strconv.Itoa(s.Index + 1),
			s.Name,
			s.Class,
			string(s.Kind),
			summarize(s),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("#", "Stage", "Operator", "Signal", "Output").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= 0 && row < len(sections) && sections[row].Kind == trace.KindError {
				return base.Foreground(colorRed)
			}
			if col == 0 {
				return base.Foreground(colorDim)
			}
			return base
		})

	return t.Render()
}

// summarize returns the Output cell of a section.
func summarize(s explain.Section) string {
	if s.Structured {
		return plural(len(s.Blocks), "structured value")
	}
	return truncate(s.Inline, maxOutputWidth)
}

// operatorNotes describes each operator class once, in first-use order.
func operatorNotes(sections []explain.Section) []string {
	seen := make(map[string]bool)
	var notes []string
	for _, s := range sections {
		if seen[s.Class] {
			continue
		}
		seen[s.Class] = true
		notes = append(notes, "  "+StyleValue.Render(s.Class)+" "+StyleDim.Render(s.Description))
	}
	return notes
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func writeSectionsJSON(w io.Writer, sections []explain.Section) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sections); err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	return nil
}
