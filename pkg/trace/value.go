package trace

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// prettyOptions matches two-space indented JSON without reordering keys.
// Width 1 puts every array element on its own line.
var prettyOptions = &pretty.Options{Width: 1, Indent: "  ", SortKeys: false}

// Value is one recorded result of a stage.
type Value struct {
	// Raw is the JSON text of the record's result ("null" when absent).
	Raw string `json:"raw"`
	// Kind is this record's own event marker.
	Kind Kind `json:"kind"`
}

// IsStructured reports whether the result is a JSON object or array.
func (v Value) IsStructured() bool {
	r := gjson.Parse(v.Raw)
	return r.IsObject() || r.IsArray()
}

// Text renders the result for inline display. Strings lose their quotes,
// other scalars render verbatim and structured results as compact JSON.
func (v Value) Text() string {
	r := gjson.Parse(v.Raw)
	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.JSON:
		return string(pretty.Ugly([]byte(r.Raw)))
	case gjson.Null:
		return "null"
	default:
		return strings.TrimSpace(r.Raw)
	}
}

// Pretty renders the result as two-space indented JSON.
func (v Value) Pretty() string {
	return strings.TrimRight(string(pretty.PrettyOptions([]byte(v.Raw), prettyOptions)), "\n")
}
