package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/eduai/eduai/internal/prompts"
)

// taskBody is the JSON body shared by the task endpoints.
type taskBody struct {
	Text          string        `json:"text"`
	GradeLevel    string        `json:"grade_level"`
	Difficulty    string        `json:"difficulty"`
	NumQuestions  flexInt       `json:"num_questions"`
	QuestionTypes questionTypes `json:"question_types"`
	Duration      string        `json:"duration"`
}

func (b taskBody) taskRequest() prompts.TaskRequest {
	return prompts.TaskRequest{
		Topic:         strings.TrimSpace(b.Text),
		GradeLevel:    b.GradeLevel,
		Difficulty:    b.Difficulty,
		NumQuestions:  int(b.NumQuestions),
		QuestionTypes: []string(b.QuestionTypes),
		Duration:      b.Duration,
	}
}

// flexInt accepts a JSON number or a numeric string. Browser forms send
// the question count as a string.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("num_questions must be an integer, got %q", s)
		}
		*f = flexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("num_questions must be an integer: %w", err)
	}
	*f = flexInt(n)
	return nil
}

// questionTypes accepts "a,b" or ["a","b"].
type questionTypes []string

func (q *questionTypes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("question_types must be a string or a list of strings: %w", err)
		}
		*q = prompts.ParseQuestionTypes(strings.Join(list, ","))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("question_types must be a string or a list of strings: %w", err)
	}
	*q = prompts.ParseQuestionTypes(s)
	return nil
}
