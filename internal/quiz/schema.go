package quiz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://quiz.json"

// quizSchema checks key presence only. options is required for
// multiple_choice and true_false, and true_false options must be exactly
// ["True","False"]. Field types and the type enum are not enforced.
const quizSchema = `{
  "type": "object",
  "required": ["questions"],
  "properties": {
    "questions": {
      "type": "array",
      "items": {"$ref": "#/$defs/question"}
    }
  },
  "$defs": {
    "question": {
      "type": "object",
      "required": ["type", "question", "correct_answer", "explanation"],
      "allOf": [
        {
          "if": {
            "properties": {"type": {"enum": ["multiple_choice", "true_false"]}},
            "required": ["type"]
          },
          "then": {"required": ["options"]}
        },
        {
          "if": {
            "properties": {"type": {"const": "true_false"}},
            "required": ["type"]
          },
          "then": {"properties": {"options": {"const": ["True", "False"]}}}
        }
      ]
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// schema returns the compiled quiz schema, compiling it on first use.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(quizSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile quiz schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks v against the quiz schema.
func Validate(v any) error {
	sch, err := schema()
	if err != nil {
		return err
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
