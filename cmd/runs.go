package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect past generation runs",
}

// withStore opens the configured store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, err := openStore(cmd, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(cmd.Context(), s)
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			runs, err := s.RunRepo().ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("query runs: %w", err)
			}
			printRuns(cmd.OutOrStdout(), runs)
			return nil
		})
	},
}

func printRuns(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-19s  %-9s  %5s  %5s  %-13s  %s\n",
		"ID", "Started", "Status", "Items", "Gen", "Images", "Model")
	fmt.Fprintln(w, strings.Repeat("─", 110))
	for _, r := range runs {
		images := fmt.Sprintf("%d/%d/%d", r.ImagesSucceeded, r.ImagesFailed, r.ImagesSkipped)
		fmt.Fprintf(w, "%-36s  %-19s  %-9s  %5d  %5d  %-13s  %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status,
			r.Items,
			r.Generated,
			images,
			truncate(r.Model, 28),
		)
	}
}

var runsViewCmd = &cobra.Command{
	Use:   "view <run-id>",
	Short: "Show one run with its LLM and image events",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			return printRun(ctx, cmd.OutOrStdout(), s, args[0])
		})
	},
}

func printRun(ctx context.Context, w io.Writer, s *store.Store, id string) error {
	r, err := s.RunRepo().GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if r == nil {
		return fmt.Errorf("run %s not found", id)
	}

	fmt.Fprintf(w, "ID:        %s\n", r.ID)
	fmt.Fprintf(w, "Started:   %s\n", r.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if !r.FinishedAt.IsZero() {
		fmt.Fprintf(w, "Finished:  %s\n", r.FinishedAt.Local().Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "Status:    %s\n", r.Status)
	fmt.Fprintf(w, "Input:     %s (%d items)\n", r.InputPath, r.Items)
	fmt.Fprintf(w, "Output:    %s\n", r.OutputPath)
	fmt.Fprintf(w, "Provider:  %s / %s\n", r.Provider, r.Model)
	fmt.Fprintf(w, "Questions: %d generated, %d failed\n", r.Generated, r.GenerationFailed)
	fmt.Fprintf(w, "Images:    %d succeeded, %d failed, %d skipped\n", r.ImagesSucceeded, r.ImagesFailed, r.ImagesSkipped)

	events, err := s.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{RunID: id})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	if len(events) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-5s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Fprintln(w, strings.Repeat("─", 84))
		for _, e := range events {
			fmt.Fprintf(w, "%-5d  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.ID, e.Purpose, truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, okMark(e.Success))
		}
	}

	images, err := s.EventRepo().QueryImageEvents(ctx, store.QueryOpts{RunID: id})
	if err != nil {
		return fmt.Errorf("query image events: %w", err)
	}
	if len(images) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-4s  %-8s  %-2s  %s\n", "Q", "Attempts", "OK", "Path / Error")
		fmt.Fprintln(w, strings.Repeat("─", 84))
		for _, e := range images {
			detail := e.Path
			if !e.Success {
				detail = e.ErrorMessage
			}
			fmt.Fprintf(w, "%-4d  %-8d  %-2s  %s\n", e.Position, e.Attempts, okMark(e.Success), truncate(detail, 64))
		}
	}
	return nil
}

var runsEventCmd = &cobra.Command{
	Use:   "event <id>",
	Short: "View full prompt and response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			e, err := s.EventRepo().GetLLMEvent(ctx, id)
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}
			if e == nil {
				return fmt.Errorf("event %d not found", id)
			}
			printLLMEvent(cmd.OutOrStdout(), e)
			return nil
		})
	},
}

func printLLMEvent(w io.Writer, e *store.LLMRequestEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Run:       %s\n", e.RunID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Provider:  %s\n", e.Provider)
	fmt.Fprintf(w, "Model:     %s\n", e.Model)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "Latency:   %dms\n", e.LatencyMs)
	fmt.Fprintf(w, "Success:   %v\n", e.Success)
	if e.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:     %s\n", e.ErrorMessage)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "PROMPT")
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, orNotCaptured(e.Prompt))

	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "RESPONSE")
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, orNotCaptured(e.ResponseText))
}

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, s *store.Store) error {
			return printStats(ctx, cmd.OutOrStdout(), s.EventRepo())
		})
	},
}

func printStats(ctx context.Context, w io.Writer, repo store.EventRepo) error {
	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}

	if len(stats) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return nil
	}

	// Usage by purpose.
	fmt.Fprintln(w, "Usage by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var totalCalls, totalIn, totalOut int
	for _, st := range stats {
		total := st.InputTokens + st.OutputTokens
		fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, total, st.AvgLatencyMs)
		totalCalls += st.Calls
		totalIn += st.InputTokens
		totalOut += st.OutputTokens
	}

	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)

	// Cost by model.
	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(modelUsage) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var totalCost float64
	var unknownModels []string
	for _, mu := range modelUsage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Model)
			fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		fmt.Fprintf(w, "%-32s  %6d  %10d  %10d  %9s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, formatCost(c))
	}

	fmt.Fprintln(w, strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-32s  %6s  %10s  %10s  %9s\n",
		label, "", "", "", formatCost(totalCost))

	if len(unknownModels) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknownModels, ", "))
	}
	return nil
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func orNotCaptured(s string) string {
	if s == "" {
		return "(not captured)"
	}
	return s
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
	runsListCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsViewCmd)
	runsCmd.AddCommand(runsEventCmd)
	runsCmd.AddCommand(runsStatsCmd)
}
