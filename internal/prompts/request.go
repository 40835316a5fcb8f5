package prompts

import (
	"errors"
	"strings"
)

// Defaults applied by WithDefaults.
const (
	DefaultGradeLevel   = "General"
	DefaultDifficulty   = "medium"
	DefaultNumQuestions = 5
	DefaultQuestionType = "true_false"
	DefaultDuration     = "60 minutes"
)

// ErrMissingTopic is returned by Validate when the topic is empty.
var ErrMissingTopic = errors.New("text is required")

// TaskRequest carries the parameters of one task call. Fields that a task
// does not use are ignored by its prompt builder.
type TaskRequest struct {
	Topic         string
	GradeLevel    string
	Difficulty    string
	NumQuestions  int
	QuestionTypes []string
	Duration      string
}

// WithDefaults returns a copy with every unset optional field defaulted.
func (r TaskRequest) WithDefaults() TaskRequest {
	if r.GradeLevel == "" {
		r.GradeLevel = DefaultGradeLevel
	}
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.NumQuestions <= 0 {
		r.NumQuestions = DefaultNumQuestions
	}
	if len(r.QuestionTypes) == 0 {
		r.QuestionTypes = []string{DefaultQuestionType}
	} else {
		r.QuestionTypes = append([]string(nil), r.QuestionTypes...)
	}
	if r.Duration == "" {
		r.Duration = DefaultDuration
	}
	return r
}

// Validate reports ErrMissingTopic when the topic is blank.
func (r TaskRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return ErrMissingTopic
	}
	return nil
}

// ParseQuestionTypes splits a comma-separated list, trimming blanks and
// dropping duplicates while keeping first-seen order.
func ParseQuestionTypes(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}
	return out
}
