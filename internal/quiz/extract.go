// Package quiz turns raw backend text into a validated quiz document.
package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Stage records which parse attempt produced a value.
type Stage int

const (
	StageNone      Stage = iota
	StageStrict          // the whole text was one JSON document
	StageRecovered       // the span from the first '{' to the last '}' was
)

func (s Stage) String() string {
	switch s {
	case StageStrict:
		return "strict"
	case StageRecovered:
		return "recovered"
	default:
		return "none"
	}
}

// ErrNoJSON is returned when neither parse attempt succeeds.
var ErrNoJSON = errors.New("no JSON document found")

// Extract parses raw as JSON, first strictly and then from the outermost
// brace span. Numbers are kept as json.Number.
func Extract(raw string) (any, Stage, error) {
	v, strictErr := parseStrict(raw)
	if strictErr == nil {
		return v, StageStrict, nil
	}

	span, ok := outermostObject(raw)
	if !ok {
		return nil, StageNone, fmt.Errorf("%w: %v", ErrNoJSON, strictErr)
	}
	v, err := parseStrict(span)
	if err != nil {
		return nil, StageNone, fmt.Errorf("%w: %v", ErrNoJSON, err)
	}
	return v, StageRecovered, nil
}

// parseStrict decodes exactly one JSON value; trailing non-space data is
// an error.
func parseStrict(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON document")
	}
	return v, nil
}

// outermostObject returns raw from its first '{' through its last '}'.
func outermostObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// canonical renders v as 2-space indented JSON without HTML escaping.
func canonical(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
