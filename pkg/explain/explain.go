package explain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/marbles/pkg/trace"
)

// Options configures section building.
type Options struct {
	// StructuredValues renders object and array values as collapsible blocks.
	// When false every stage is rendered inline.
	StructuredValues bool
	// Descriptions overrides or extends the built-in operator table.
	Descriptions map[string]string
}

// DefaultOptions enables structured values with the built-in table.
func DefaultOptions() Options {
	return Options{StructuredValues: true}
}

// Section explains one stage.
type Section struct {
	Index       int        `json:"index"`
	Name        string     `json:"name"`
	Class       string     `json:"class"`
	Description string     `json:"description"`
	Kind        trace.Kind `json:"kind"`
	Structured  bool       `json:"structured"`
	// Inline holds the comma-joined values of a scalar stage.
	Inline string `json:"inline,omitempty"`
	// Blocks holds one entry per value of a structured stage.
	Blocks []Block `json:"blocks,omitempty"`
}

// Block is a collapsible structured value.
type Block struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Build explains every event in order.
func Build(events []trace.Event, opts Options) []Section {
	sections := make([]Section, 0, len(events))
	for i, ev := range events {
		sections = append(sections, buildSection(i, ev, opts))
	}
	return sections
}

func buildSection(i int, ev trace.Event, opts Options) Section {
	s := Section{
		Index:       i,
		Name:        ev.Name,
		Class:       ev.Class,
		Description: opts.describe(ev.Class),
		Kind:        ev.Kind,
		Structured:  opts.StructuredValues && ev.Structured,
	}

	if !s.Structured {
		texts := make([]string, len(ev.Values))
		for j, v := range ev.Values {
			texts[j] = v.Text()
		}
		s.Inline = strings.Join(texts, ", ")
		return s
	}

	s.Blocks = make([]Block, len(ev.Values))
	for j, v := range ev.Values {
		s.Blocks[j] = Block{
			ID:    blockID(i, j, v.Raw),
			Title: v.Text(),
			Body:  v.Pretty(),
		}
	}
	return s
}

func (o Options) describe(class string) string {
	if d, ok := o.Descriptions[class]; ok {
		return d
	}
	return Describe(class)
}

// blockID derives a stable element id from the block's position and content.
func blockID(stage, value int, raw string) string {
	key := fmt.Sprintf("%d/%d/%s", stage, value, raw)
	return "value-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()[:8]
}
