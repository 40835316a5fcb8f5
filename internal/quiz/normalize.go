package quiz

import (
	"github.com/sirupsen/logrus"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/result"
)

// MalformedMessage is the error reported for any quiz text that cannot be
// turned into a valid document.
const MalformedMessage = "Failed to generate properly formatted quiz"

// Normalizer converts raw backend text into a canonical quiz result.
type Normalizer struct {
	log logrus.FieldLogger
}

// NewNormalizer creates a Normalizer. A nil logger uses the shared one.
func NewNormalizer(log logrus.FieldLogger) *Normalizer {
	if log == nil {
		log = config.Logger()
	}
	return &Normalizer{log: log}
}

// Normalize parses raw, validates it and returns the canonical JSON with
// {"question_count": n}. Any failure yields MalformedMessage. There is no
// second attempt.
func (n *Normalizer) Normalize(raw string) result.Result {
	v, stage, err := Extract(raw)
	if err != nil {
		n.log.WithError(err).WithField("raw_len", len(raw)).Warn("quiz output is not JSON")
		return result.Failure(MalformedMessage)
	}

	if err := Validate(v); err != nil {
		n.log.WithError(err).WithField("stage", stage.String()).Warn("quiz output failed validation")
		return result.Failure(MalformedMessage)
	}

	questions := v.(map[string]any)["questions"].([]any)

	content, err := canonical(v)
	if err != nil {
		n.log.WithError(err).Error("re-serialize quiz")
		return result.Failure(MalformedMessage)
	}

	if stage == StageRecovered {
		n.log.WithField("question_count", len(questions)).Debug("quiz recovered from surrounding text")
	}
	return result.Success(content, map[string]any{"question_count": len(questions)})
}

// Normalize runs a Normalizer that logs to the shared logger.
func Normalize(raw string) result.Result {
	return NewNormalizer(nil).Normalize(raw)
}
