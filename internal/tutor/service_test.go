package tutor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduai/eduai/internal/generation"
	"github.com/eduai/eduai/internal/llm"
	"github.com/eduai/eduai/internal/prompts"
	"github.com/eduai/eduai/internal/quiz"
)

const photosynthesisQuiz = `{"questions":[
	{"type":"multiple_choice","question":"Which pigment captures light?","correct_answer":"Chlorophyll","options":["Chlorophyll","Melanin","Keratin","Hemoglobin"],"explanation":"Chlorophyll absorbs light."},
	{"type":"true_false","question":"Plants release oxygen.","correct_answer":"True","options":["True","False"],"explanation":"Oxygen is a by-product."},
	{"type":"true_false","question":"Photosynthesis needs no water.","correct_answer":"False","options":["True","False"],"explanation":"Water is split for electrons."}
]}`

func newService(responses ...llm.MockResponse) (*Service, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewService(generation.NewClient(mock, llm.DefaultGenerationConfig())), mock
}

func TestExplain_PassesTextThroughVerbatim(t *testing.T) {
	// Looks like JSON on purpose: explain must not parse it.
	raw := "  {\"not\": \"parsed\"} \n**Definition**: photosynthesis...\n"
	svc, mock := newService(llm.MockResponse{Text: raw})

	r := svc.Explain(context.Background(), prompts.TaskRequest{Topic: "Photosynthesis", GradeLevel: "5"})

	require.True(t, r.OK(), r.Error)
	assert.Equal(t, raw, r.Content)
	assert.Nil(t, r.Metadata)

	req, _ := mock.LastCall()
	assert.Equal(t, prompts.MustLookup(prompts.TaskExplain).System, req.System)
	assert.Contains(t, req.Prompt, "Topic: Photosynthesis")
	assert.Contains(t, req.Prompt, "Grade Level: 5")
}

func TestGenerateTeachingNotes_PassesTextThroughVerbatim(t *testing.T) {
	raw := "Learning objectives:\n1. ...\n```json\n{}\n```"
	svc, mock := newService(llm.MockResponse{Text: raw})

	r := svc.GenerateTeachingNotes(context.Background(), prompts.TaskRequest{Topic: "Fractions"})

	require.True(t, r.OK())
	assert.Equal(t, raw, r.Content)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Prompt, "60 minutes lesson on Fractions")
}

func TestGenerateQuiz_PhotosynthesisScenario(t *testing.T) {
	svc, mock := newService(llm.MockResponse{Text: photosynthesisQuiz})

	r := svc.GenerateQuiz(context.Background(), prompts.TaskRequest{
		Topic:        "Photosynthesis",
		Difficulty:   "easy",
		NumQuestions: 3,
	})

	require.True(t, r.OK(), r.Error)
	assert.Equal(t, map[string]any{"question_count": 3}, r.Metadata)

	doc, err := quiz.Decode(r.Content)
	require.NoError(t, err)
	assert.Len(t, doc.Questions, 3)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Prompt, "Generate a easy difficulty quiz about Photosynthesis with 3 questions.")
	assert.Contains(t, req.Prompt, "type: true_false")
}

func TestGenerateQuiz_Malformed(t *testing.T) {
	svc, _ := newService(llm.MockResponse{Text: "Sorry, I can't help with that."})

	r := svc.GenerateQuiz(context.Background(), prompts.TaskRequest{Topic: "x"})
	assert.Equal(t, quiz.MalformedMessage, r.Error)
	assert.Empty(t, r.Content)
	assert.Nil(t, r.Metadata)
}

func TestUpstreamFailureIsReported(t *testing.T) {
	tasks := prompts.Tasks()
	for _, task := range tasks {
		t.Run(string(task), func(t *testing.T) {
			svc, _ := newService(llm.MockResponse{Err: &llm.ErrQuotaExceeded{Err: errors.New("out of credit")}})

			r := svc.Run(context.Background(), task, prompts.TaskRequest{Topic: "x"})
			assert.False(t, r.OK())
			assert.Empty(t, r.Content)
			assert.True(t, strings.Contains(r.Error, "out of credit"), r.Error)
		})
	}
}

func TestRunDispatch(t *testing.T) {
	svc, mock := newService(
		llm.MockResponse{Text: "explanation"},
		llm.MockResponse{Text: photosynthesisQuiz},
		llm.MockResponse{Text: "notes"},
	)
	ctx := context.Background()
	req := prompts.TaskRequest{Topic: "Photosynthesis"}

	assert.Equal(t, "explanation", svc.Run(ctx, prompts.TaskExplain, req).Content)
	assert.Equal(t, 3, svc.Run(ctx, prompts.TaskGenerateQuiz, req).Metadata["question_count"])
	assert.Equal(t, "notes", svc.Run(ctx, prompts.TaskTeachingNotes, req).Content)

	for i, task := range prompts.Tasks() {
		assert.Equal(t, prompts.MustLookup(task).System, mock.Calls[i].System)
		assert.Equal(t, llm.DefaultGenerationConfig(), mock.Calls[i].Config)
	}

	r := svc.Run(ctx, "summarize", req)
	assert.Contains(t, r.Error, "unknown task type")
	assert.Equal(t, 3, mock.CallCount())
}

func TestEachCallIsIndependent(t *testing.T) {
	svc, mock := newService(llm.MockResponse{Text: "a"}, llm.MockResponse{Text: "b"})

	svc.Explain(context.Background(), prompts.TaskRequest{Topic: "First topic"})
	svc.Explain(context.Background(), prompts.TaskRequest{Topic: "Second topic"})

	require.Len(t, mock.Calls, 2)
	assert.NotContains(t, mock.Calls[1].Prompt, "First topic")
	assert.NotContains(t, mock.Calls[1].System, "First topic")
}
