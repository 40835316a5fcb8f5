// Package result defines the envelope every task operation returns.
package result

// Result is either a success carrying Content (and optional Metadata) or a
// failure carrying Error. Build one with Success or Failure.
type Result struct {
	Content  string
	Metadata map[string]any
	Error    string
}

// Success wraps a payload. meta may be nil.
func Success(content string, meta map[string]any) Result {
	if len(meta) == 0 {
		meta = nil
	}
	return Result{Content: content, Metadata: meta}
}

// Failure wraps an error description. An empty msg is replaced so the
// result is never mistaken for a success.
func Failure(msg string) Result {
	if msg == "" {
		msg = "unknown error"
	}
	return Result{Error: msg}
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Error == ""
}

// Body is the JSON body for this result: {"error"} on failure, otherwise
// {"response"} plus "metadata" when present.
func (r Result) Body() map[string]any {
	if !r.OK() {
		return map[string]any{"error": r.Error}
	}
	body := map[string]any{"response": r.Content}
	if r.Metadata != nil {
		body["metadata"] = r.Metadata
	}
	return body
}
