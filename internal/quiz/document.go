package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Question types the prompt asks for.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeOpenEnded      = "open_ended"
)

// Question is one quiz entry. CorrectAnswer is kept as decoded because
// backends sometimes emit booleans or numbers there.
type Question struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	CorrectAnswer any      `json:"correct_answer"`
	Options       []string `json:"options,omitempty"`
	Explanation   string   `json:"explanation"`
}

// Answer renders CorrectAnswer as text.
func (q Question) Answer() string {
	switch a := q.CorrectAnswer.(type) {
	case nil:
		return ""
	case string:
		return a
	default:
		return fmt.Sprint(a)
	}
}

// Document is a parsed quiz.
type Document struct {
	Questions []Question `json:"questions"`
}

// QuestionCount returns the number of questions.
func (d *Document) QuestionCount() int {
	return len(d.Questions)
}

// Decode maps canonical quiz content to a Document.
func Decode(content string) (*Document, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &doc, nil
}
