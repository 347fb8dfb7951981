package explain

// NoDescription is shown for operator classes missing from the table.
const NoDescription = "No description available."

var descriptions = map[string]string{
	"FluxArray":             "Emits the contents of a wrapped (shared) array.",
	"FluxCallable":          "For each subscriber, a Supplier is invoked and the returned value emitted.",
	"FluxCombineLatest":     "Combines the latest values from multiple sources through a function.",
	"FluxConcatArray":       "Concatenates a fixed array of Publishers' values.",
	"FluxDelaySubscription": "Delays the subscription to the main source until another Publisher signals a value or completes.",
	"FluxDistinctFuseable":  "For each Subscriber, track elements from this Flux that have been seen and filter out duplicates.",
	"FluxFilter":            "Filters out values that make a filter function return false.",
	"FluxFilterFuseable":    "Filters out values that make a filter function return false.",
	"FluxFirstEmitting":     "Given a set of source Publishers the values of that Publisher is forwarded to the subscriber which responds first with any signal.",
	"FluxFlatMap":           "Transform the elements emitted by this Flux asynchronously into Publishers, then flatten these inner publishers into a single Flux through merging, which allow them to interleave.",
	"FluxInterval":          "Emits long values starting with 0 and incrementing at specified time intervals on the global timer.",
	"FluxIterable":          "Emits the contents of an Iterable source.",
	"FluxMapFuseable":       "Maps the values of the source publisher one-on-one via a mapper function.",
	"FluxMerge":             "Merges a fixed array of Publishers.",
	"FluxOnErrorResume":     "Resumes the failed main sequence with another sequence returned by a function for the particular failure exception.",
	"FluxRange":             "Emits a range of integer values.",
	"FluxTakeFuseable":      "Takes only the first N values from the source Publisher. If N is zero, the subscriber gets completed if the source completes, signals an error or signals its first value (which is not relayed though).",
	"FluxTimeout":           "Signals a timeout (or switches to another sequence) in case a per-item generated Publisher source fires an item or completes before the next item arrives from the main source.",
	"FluxZip":               "Repeatedly takes one item from all source Publishers and runs it through a function to produce the output item.",
	"MonoCollectList":       "Buffers all values from the source Publisher and emits it as a single List.",
	"MonoDelay":             "Emits a single zero delayed by some time amount with a help of a ScheduledExecutorService instance or a generic function callback that wraps other form of async-delayed execution of tasks.",
	"MonoDelaySubscription": "Delays the subscription to the main source until another Publisher signals a value or completes.",
	"MonoFilter":            "Filters out values that make a filter function return false.",
	"MonoFilterFuseable":    "Filters out values that make a filter function return false.",
	"MonoFirst":             "Given a set of Publishers, the Publisher that responds first with any signal is used.",
	"MonoFlattenIterable":   "Concatenates values from Iterable sequences generated via a mapper function.",
	"MonoJust":              "Emits a single item.",
	"MonoMapFuseable":       "Maps the values of the source publisher one-on-one via a mapper function.",
	"MonoOnErrorResume":     "Resumes the failed main sequence with another sequence returned by a function for the particular failure exception.",
	"MonoTimeout":           "Signals a timeout (or switches to another sequence) in case a per-item generated Publisher source fires an item or completes before the next item arrives from the main source.",
}

// Describe returns the built-in description of an operator class.
func Describe(class string) string {
	if d, ok := descriptions[class]; ok {
		return d
	}
	return NoDescription
}

// Classes returns the number of operator classes with a built-in description.
func Classes() int { return len(descriptions) }
