package trace

// Kind is the outcome of a pipeline stage.
type Kind string

const (
	// KindEmit marks a stage that emitted values and completed normally.
	KindEmit Kind = "EMIT"
	// KindError marks a stage that terminated with an error signal.
	KindError Kind = "ERROR"
)

// ParseKind maps an event marker to a Kind. Only the exact marker "ERROR"
// denotes a failure; anything else, including an absent marker, is an emit.
func ParseKind(marker string) Kind {
	if marker == string(KindError) {
		return KindError
	}
	return KindEmit
}

// Event is one pipeline stage's trace record.
type Event struct {
	// Name is the stage label shown in the operator box. Never empty.
	Name string `json:"name"`
	// Class is the implementing operator's class tag.
	Class string `json:"class"`
	// Kind is taken from the first value record's marker.
	Kind Kind `json:"kind"`
	// Values holds every value the stage produced, in emission order.
	Values []Value `json:"values"`
	// Structured is decided from the first value and applies to all Values.
	Structured bool `json:"structured"`
}

// IsError reports whether the stage terminated with an error signal.
func (e Event) IsError() bool { return e.Kind == KindError }
