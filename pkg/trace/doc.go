// Package trace decodes recorded reactive-pipeline executions into an ordered
// sequence of stage events.
//
// # Input Format
//
// A trace is a JSON array of result batches. Each batch carries a "results"
// object whose keys are encoded two-element tuples and whose values are the
// records produced by that stage, in emission order:
//
//	[
//	  {"results": {
//	    "[FluxRange,source(range)]": [{"event": "EMIT", "result": 1}],
//	    "[FluxMapFuseable,map]":     [{"event": "EMIT", "result": {"id": 1}}]
//	  }}
//	]
//
// Keys are visited in document order and batches in array order, so the
// decoded sequence preserves the trace verbatim.
//
// # Tuple Keys
//
// The first tuple slot is the operator class. The second slot is normally the
// stage label, except when it names the originating publisher (it starts with
// "source("), in which case the class doubles as the label. See [DecodeKey].
//
// # Failure Policy
//
// [Parse] reports why a payload could not be decoded. [Decode] is the
// fail-soft variant used by renderers: any failure yields an empty sequence,
// never a partial one.
package trace
