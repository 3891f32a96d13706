package dispatch

import (
	"bytes"
	"encoding/json"

	"github.com/dmitrymomot/errorlog/pkg/environment"
	"github.com/dmitrymomot/errorlog/pkg/record"
)

// FormatJSON renders rec as one line of JSON. URLs and messages keep their
// &, < and > characters as written.
func FormatJSON(rec record.LogRecord) ([]byte, error) {
	return encode(rec, "")
}

// FormatPretty renders rec as indented JSON with every escaped newline
// replaced by a real one, so stacks read as in a terminal. The output is
// meant for people and is not guaranteed to be valid JSON.
func FormatPretty(rec record.LogRecord) ([]byte, error) {
	b, err := encode(rec, "  ")
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(b, []byte(`\n`), []byte("\n")), nil
}

func encode(rec record.LogRecord, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Format picks FormatJSON in production and FormatPretty otherwise.
func Format(rec record.LogRecord, env environment.Environment) ([]byte, error) {
	if env.IsProduction() {
		return FormatJSON(rec)
	}
	return FormatPretty(rec)
}
