package trace

import (
	"github.com/tidwall/gjson"

	"github.com/matzehuels/marbles/pkg/errors"
)

// Option configures decoding.
type Option func(*decoder)

type decoder struct {
	decodeKey func(string) (string, string, error)
}

// WithLegacyKeys decodes tuple keys with [DecodeLegacyKey].
func WithLegacyKeys() Option {
	return func(d *decoder) { d.decodeKey = DecodeLegacyKey }
}

// Decode converts a trace payload into stage events. Any decoding failure
// yields an empty sequence; callers that need the reason use [Parse].
func Decode(data []byte, opts ...Option) []Event {
	events, err := Parse(data, opts...)
	if err != nil {
		return nil
	}
	return events
}

// Parse converts a trace payload into stage events, reporting the first
// structural problem as an [errors.ErrCodeMalformedTrace] error. It never
// returns a partial sequence.
func Parse(data []byte, opts ...Option) ([]Event, error) {
	d := decoder{decodeKey: DecodeKey}
	for _, opt := range opts {
		opt(&d)
	}

	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeMalformedTrace, "payload is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() && !root.IsObject() {
		return nil, errors.New(errors.ErrCodeMalformedTrace, "payload must be a list of result batches")
	}

	var batches []gjson.Result
	if root.IsArray() {
		batches = root.Array()
	} else {
		for _, m := range members(root) {
			batches = append(batches, m.value)
		}
	}

	var events []Event
	for i, b := range batches {
		var err error
		if events, err = d.appendBatch(events, b); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedTrace, err, "batch %d", i)
		}
	}
	return events, nil
}

type member struct {
	key   string
	value gjson.Result
}

// members returns an object's members in document order. A repeated key
// keeps its first position and its last value.
func members(obj gjson.Result) []member {
	var out []member
	index := make(map[string]int)
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if i, ok := index[key]; ok {
			out[i].value = v
			return true
		}
		index[key] = len(out)
		out = append(out, member{key: key, value: v})
		return true
	})
	return out
}

// field returns the last member of obj named name.
func field(obj gjson.Result, name string) gjson.Result {
	var out gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == name {
			out = v
		}
		return true
	})
	return out
}

func (d decoder) appendBatch(events []Event, batch gjson.Result) ([]Event, error) {
	if !batch.IsObject() {
		return nil, errors.New(errors.ErrCodeMalformedTrace, "batch is not an object")
	}
	results := field(batch, "results")
	if !results.IsObject() {
		return nil, errors.New(errors.ErrCodeMalformedTrace, "batch has no results object")
	}

	for _, m := range members(results) {
		ev, err := d.decodeEvent(m.key, m.value)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (d decoder) decodeEvent(key string, records gjson.Result) (Event, error) {
	name, class, err := d.decodeKey(key)
	if err != nil {
		return Event{}, err
	}
	if !records.IsArray() {
		return Event{}, errors.New(errors.ErrCodeMalformedTrace, "stage %q: values are not a list", name)
	}

	var values []Value
	for i, rec := range records.Array() {
		if !rec.IsObject() {
			return Event{}, errors.New(errors.ErrCodeMalformedTrace, "stage %q: value %d is not a record", name, i)
		}
		raw := "null"
		if res := field(rec, "result"); res.Exists() {
			raw = res.Raw
		}
		values = append(values, Value{Raw: raw, Kind: ParseKind(field(rec, "event").String())})
	}
	if len(values) == 0 {
		return Event{}, errors.New(errors.ErrCodeMalformedTrace, "stage %q has no values", name)
	}

	return Event{
		Name:       name,
		Class:      class,
		Kind:       values[0].Kind,
		Values:     values,
		Structured: values[0].IsStructured(),
	}, nil
}
