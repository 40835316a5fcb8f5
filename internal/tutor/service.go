// Package tutor implements the content generation tasks on top of the
// prompt registry, the generation client and the quiz normalizer.
package tutor

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/generation"
	"github.com/eduai/eduai/internal/llm"
	"github.com/eduai/eduai/internal/prompts"
	"github.com/eduai/eduai/internal/quiz"
	"github.com/eduai/eduai/internal/result"
)

// Generator is the part of generation.Client the service needs.
type Generator interface {
	Generate(ctx context.Context, prompt, system string) generation.Outcome
}

// Service runs task operations. It keeps no per-call state.
type Service struct {
	gen        Generator
	normalizer *quiz.Normalizer
}

// NewService creates a Service.
func NewService(gen Generator) *Service {
	return &Service{gen: gen, normalizer: quiz.NewNormalizer(nil)}
}

// Explain returns a grade-appropriate explanation of the topic. The
// backend text is returned verbatim.
func (s *Service) Explain(ctx context.Context, req prompts.TaskRequest) result.Result {
	return s.passthrough(ctx, prompts.TaskExplain, req)
}

// GenerateTeachingNotes returns lesson notes for the topic. The backend
// text is returned verbatim.
func (s *Service) GenerateTeachingNotes(ctx context.Context, req prompts.TaskRequest) result.Result {
	return s.passthrough(ctx, prompts.TaskTeachingNotes, req)
}

// GenerateQuiz asks for a JSON quiz and normalizes the answer.
func (s *Service) GenerateQuiz(ctx context.Context, req prompts.TaskRequest) result.Result {
	out, ok := s.call(ctx, prompts.TaskGenerateQuiz, req)
	if !ok {
		return out
	}
	return s.normalizer.Normalize(out.Content)
}

// Run dispatches to the operation for task.
func (s *Service) Run(ctx context.Context, task prompts.TaskType, req prompts.TaskRequest) result.Result {
	switch task {
	case prompts.TaskExplain:
		return s.Explain(ctx, req)
	case prompts.TaskGenerateQuiz:
		return s.GenerateQuiz(ctx, req)
	case prompts.TaskTeachingNotes:
		return s.GenerateTeachingNotes(ctx, req)
	default:
		return result.Failure(fmt.Sprintf("unknown task type %q", task))
	}
}

func (s *Service) passthrough(ctx context.Context, task prompts.TaskType, req prompts.TaskRequest) result.Result {
	out, _ := s.call(ctx, task, req)
	return out
}

// call builds the prompt for task and sends it. On success the returned
// Result holds the raw text.
func (s *Service) call(ctx context.Context, task prompts.TaskType, req prompts.TaskRequest) (result.Result, bool) {
	tmpl := prompts.MustLookup(task)
	ctx = llm.WithPurpose(ctx, string(task))

	out := s.gen.Generate(ctx, tmpl.Build(req), tmpl.System)
	if !out.OK() {
		config.WithContext(ctx).WithFields(logrus.Fields{
			"task": task,
			"kind": out.Failure.Kind,
		}).WithError(out.Failure).Warn("task failed upstream")
		return result.Failure(out.Failure.Message), false
	}
	return result.Success(out.Text, nil), true
}
