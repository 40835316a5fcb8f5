package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/eduai/eduai/internal/llm"
	"github.com/eduai/eduai/internal/store"
	"github.com/eduai/eduai/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged generation calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryGenerations(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			lipgloss.Fprintln(out, theme.Hint.Render("No generation calls found."))
			return nil
		}

		rows := make([][]string, 0, len(events))
		for _, e := range events {
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				strconv.Itoa(e.InputTokens),
				strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10),
				theme.Mark(e.Success),
			})
		}
		lipgloss.Fprintln(out, theme.Table(
			[]string{"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK"},
			rows, false))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a generation call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetGeneration(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		out := cmd.OutOrStdout()
		lines := []string{
			theme.Field("ID:", strconv.Itoa(e.ID)),
			theme.Field("Call:", e.CallID),
			theme.Field("Time:", e.Timestamp.Local().Format(timeLayout)),
			theme.Field("Provider:", e.Provider),
			theme.Field("Model:", e.Model),
			theme.Field("Purpose:", e.Purpose),
			theme.Field("Tokens:", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens)),
			theme.Field("Latency:", fmt.Sprintf("%dms", e.LatencyMs)),
			theme.Field("Success:", theme.Mark(e.Success)),
		}
		if e.ErrorMessage != "" {
			lines = append(lines, theme.Field("Error:", theme.Incorrect.Render(e.ErrorMessage)))
		}
		lipgloss.Fprintln(out, strings.Join(lines, "\n"))

		for _, part := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			lipgloss.Fprintln(out)
			lipgloss.Fprintln(out, theme.Section.Render(part.title))
			if part.body == "" {
				lipgloss.Fprintln(out, theme.Hint.Render("(not captured)"))
				continue
			}
			lipgloss.Fprintln(out, part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		stats, err := s.EventRepo().UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(stats) == 0 {
			lipgloss.Fprintln(out, theme.Hint.Render("No generation usage recorded yet."))
			return nil
		}

		lipgloss.Fprintln(out, theme.Title.Render("Usage by Purpose"))
		lipgloss.Fprintln(out, theme.Table(
			[]string{"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms"},
			purposeRows(stats), true))

		modelUsage, err := s.EventRepo().UsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(modelUsage) == 0 {
			return nil
		}

		rows, unknown := costRows(modelUsage)
		lipgloss.Fprintln(out)
		lipgloss.Fprintln(out, theme.Title.Render("Estimated Cost (USD)"))
		lipgloss.Fprintln(out, theme.Table(
			[]string{"Model", "Calls", "Input", "Output", "Cost"},
			rows, true))
		if len(unknown) > 0 {
			lipgloss.Fprintln(out, theme.Hint.Render("Pricing unavailable for: "+strings.Join(unknown, ", ")))
		}
		return nil
	},
}

// purposeRows formats per-purpose usage followed by a TOTAL row.
func purposeRows(stats []store.PurposeUsage) [][]string {
	rows := make([][]string, 0, len(stats)+1)
	var calls, failed, in, outTok int
	for _, st := range stats {
		rows = append(rows, []string{
			st.Purpose,
			strconv.Itoa(st.Calls),
			strconv.Itoa(st.Failures),
			strconv.Itoa(st.InputTokens),
			strconv.Itoa(st.OutputTokens),
			strconv.Itoa(st.InputTokens + st.OutputTokens),
			strconv.FormatInt(st.AvgLatencyMs, 10),
		})
		calls += st.Calls
		failed += st.Failures
		in += st.InputTokens
		outTok += st.OutputTokens
	}
	return append(rows, []string{
		"TOTAL", strconv.Itoa(calls), strconv.Itoa(failed),
		strconv.Itoa(in), strconv.Itoa(outTok), strconv.Itoa(in + outTok), "",
	})
}

// costRows prices per-model usage. Models without a price are shown with
// "?" and returned in unknown; the total then only covers priced models.
func costRows(usage []store.ModelUsage) (rows [][]string, unknown []string) {
	var total float64
	for _, mu := range usage {
		cost := "?"
		if mc := llm.LookupCost(mu.Model); mc != nil {
			c := mc.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, mu.Model)
		}
		rows = append(rows, []string{
			truncate(mu.Model, 32),
			strconv.Itoa(mu.Calls),
			strconv.Itoa(mu.InputTokens),
			strconv.Itoa(mu.OutputTokens),
			cost,
		})
	}

	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	rows = append(rows, []string{label, "", "", "", formatCost(total)})
	return rows, unknown
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (explain, generate_quiz, generate_teaching_notes)")
	llmListCmd.Flags().Duration("since", 0, "Only show calls newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
