package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/prompts"
	"github.com/eduai/eduai/internal/result"
)

// maxBodyBytes caps task request bodies.
const maxBodyBytes = 1 << 20

// Tasker runs a task operation. Implemented by tutor.Service.
type Tasker interface {
	Run(ctx context.Context, task prompts.TaskType, req prompts.TaskRequest) result.Result
}

// Handler serves the task endpoints.
type Handler struct {
	tasks   Tasker
	version string
	started time.Time
}

// NewHandler creates a Handler.
func NewHandler(tasks Tasker, version string) *Handler {
	return &Handler{tasks: tasks, version: version, started: time.Now()}
}

// Explain handles POST /api/explain.
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	h.serveTask(w, r, prompts.TaskExplain)
}

// GenerateQuiz handles POST /api/generate-quiz.
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	h.serveTask(w, r, prompts.TaskGenerateQuiz)
}

// TeachingNotes handles POST /api/teaching-notes.
func (h *Handler) TeachingNotes(w http.ResponseWriter, r *http.Request) {
	h.serveTask(w, r, prompts.TaskTeachingNotes)
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"service":        "eduai",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}

func (h *Handler) serveTask(w http.ResponseWriter, r *http.Request, task prompts.TaskType) {
	log := config.WithContext(r.Context()).WithField("task", task)

	req, err := decodeTask(w, r)
	if err != nil {
		log.WithError(err).Info("rejected task request")
		config.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	res := h.tasks.Run(r.Context(), task, req)
	log = log.WithField("duration_ms", time.Since(start).Milliseconds())

	if !res.OK() {
		log.WithField("error", res.Error).Error("task failed")
		config.JSON(w, http.StatusInternalServerError, res.Body())
		return
	}

	fields := logrus.Fields{"content_len": len(res.Content)}
	if n, ok := res.Metadata["question_count"]; ok {
		fields["question_count"] = n
	}
	log.WithFields(fields).Info("task completed")
	config.JSON(w, http.StatusOK, res.Body())
}

var errEmptyBody = errors.New("request body must be a JSON object")

func decodeTask(w http.ResponseWriter, r *http.Request) (prompts.TaskRequest, error) {
	var body taskBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return prompts.TaskRequest{}, errEmptyBody
		}
		return prompts.TaskRequest{}, errors.New("invalid request body: " + err.Error())
	}

	req := body.taskRequest()
	if err := req.Validate(); err != nil {
		return prompts.TaskRequest{}, err
	}
	if req.NumQuestions < 0 {
		return prompts.TaskRequest{}, errors.New("num_questions must be positive")
	}
	return req, nil
}
