package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eduai/eduai/internal/prompts"
	"github.com/eduai/eduai/internal/result"
)

var explainCmd = newTaskCmd(prompts.TaskExplain, "explain <topic>",
	"Explain a topic for a grade level")

var quizCmd = newTaskCmd(prompts.TaskGenerateQuiz, "quiz <topic>",
	"Generate a quiz as JSON")

var notesCmd = newTaskCmd(prompts.TaskTeachingNotes, "notes <topic>",
	"Generate teaching notes for a lesson")

// tasker is the slice of tutor.Service the task commands use.
type tasker interface {
	Run(ctx context.Context, task prompts.TaskType, req prompts.TaskRequest) result.Result
}

func newTaskCmd(task prompts.TaskType, use, short string) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := taskRequestFromFlags(cmd, args)
			if err != nil {
				return err
			}

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			raw, _ := cmd.Flags().GetBool("raw")
			return runTask(cmd.Context(), cmd.OutOrStdout(), rt.tutor, task, req, raw)
		},
	}

	f := c.Flags()
	f.StringP("grade", "g", "", "Grade level (default "+prompts.DefaultGradeLevel+")")
	f.Bool("raw", false, "Print only the generated content instead of the JSON body")
	switch task {
	case prompts.TaskGenerateQuiz:
		f.StringP("difficulty", "d", "", "Quiz difficulty (default "+prompts.DefaultDifficulty+")")
		f.IntP("num-questions", "n", 0, fmt.Sprintf("Number of questions (default %d)", prompts.DefaultNumQuestions))
		f.StringP("question-types", "t", "", "Comma-separated question types (default "+prompts.DefaultQuestionType+")")
	case prompts.TaskTeachingNotes:
		f.String("duration", "", "Lesson duration (default "+prompts.DefaultDuration+")")
	}
	return c
}

// taskRequestFromFlags joins the positional args into the topic and reads
// whichever optional flags the command defines.
func taskRequestFromFlags(cmd *cobra.Command, args []string) (prompts.TaskRequest, error) {
	f := cmd.Flags()
	req := prompts.TaskRequest{Topic: strings.TrimSpace(strings.Join(args, " "))}
	req.GradeLevel, _ = f.GetString("grade")

	if f.Lookup("difficulty") != nil {
		req.Difficulty, _ = f.GetString("difficulty")
		req.NumQuestions, _ = f.GetInt("num-questions")
		types, _ := f.GetString("question-types")
		req.QuestionTypes = prompts.ParseQuestionTypes(types)
	}
	if f.Lookup("duration") != nil {
		req.Duration, _ = f.GetString("duration")
	}

	if err := req.Validate(); err != nil {
		return prompts.TaskRequest{}, err
	}
	if req.NumQuestions < 0 {
		return prompts.TaskRequest{}, fmt.Errorf("--num-questions must be positive")
	}
	return req, nil
}

// runTask runs one task and prints its JSON body to w. A failed task is
// printed and also returned as an error so the process exits non-zero.
func runTask(ctx context.Context, w io.Writer, t tasker, task prompts.TaskType, req prompts.TaskRequest, raw bool) error {
	res := t.Run(ctx, task, req)

	if raw && res.OK() {
		_, err := fmt.Fprintln(w, res.Content)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Body()); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if !res.OK() {
		return fmt.Errorf("%s failed: %s", task, res.Error)
	}
	return nil
}
