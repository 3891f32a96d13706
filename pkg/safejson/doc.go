// Package safejson renders arbitrary Go values as JSON text for log lines.
//
// Unlike encoding/json, Stringify never fails. It is meant for values whose
// shape is unknown at compile time, such as the reason of a rejected
// operation, where a failed or enormous serialization must not break the
// error report that contains it.
//
// Guarantees:
//
//   - Reference cycles are replaced with the string "[Circular]".
//   - Nesting deeper than Limits.MaxDepth is replaced with "[MaxDepth]".
//   - Collections longer than Limits.MaxItems are cut, with a trailing
//     "[+N more]" marker.
//   - Output longer than Limits.MaxBytes is cut at a rune boundary and
//     suffixed with "…(truncated)". The result is then no longer valid JSON.
//   - Values JSON cannot represent (funcs, channels, NaN) become placeholders.
//   - Panics raised by custom MarshalJSON implementations are contained.
//
// # Usage
//
//	msg := "Rejection: " + safejson.Stringify(reason)
package safejson
