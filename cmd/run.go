package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/eduai/eduai/internal/config"
	"github.com/eduai/eduai/internal/generation"
	"github.com/eduai/eduai/internal/llm"
	"github.com/eduai/eduai/internal/store"
	"github.com/eduai/eduai/internal/tutor"
)

// runtime holds the process-wide dependencies shared by serve and the task
// commands.
type runtime struct {
	tutor *tutor.Service
	store *store.Store // nil when the event log is disabled
}

func (r *runtime) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// newRuntime opens the event log, builds the provider and wires the task
// service. The caller must Close the result.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	ctx := cmd.Context()
	rt := &runtime{}

	var events store.EventRepo = store.NopEventRepo{}
	if settings.EventLog {
		st, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		rt.store = st
		events = st.EventRepo()
	}

	llmCfg, err := llm.ConfigFromEnv()
	if err != nil {
		rt.Close()
		return nil, err
	}
	provider, err := llm.NewProviderFromEnv(ctx, events)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	client := generation.NewClient(provider, llm.DefaultGenerationConfig(),
		generation.WithTimeout(llmCfg.Timeout))
	rt.tutor = tutor.NewService(client)

	config.Logger().WithFields(logrus.Fields{
		"model":     provider.ModelID(),
		"event_log": settings.EventLog,
		"timeout":   llmCfg.Timeout.String(),
	}).Debug("runtime ready")

	return rt, nil
}
