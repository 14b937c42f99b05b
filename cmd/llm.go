package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/content"
	"github.com/mkravets/glossa/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider",
}

var llmProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run one test generation against the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		provider, err := buildProvider(ctx, s)
		if err != nil {
			return err
		}

		gen := content.New(provider, content.Config{})
		ex, err := gen.Generate(ctx, content.Input{
			Word:        "hablar",
			Translation: "to speak",
			Language:    "Spanish",
			Kind:        content.KindCloze,
			Difficulty:  "medium",
		})
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}

		fmt.Println("Provider responded.")
		fmt.Printf("Prompt: %s\n", ex.Prompt)
		fmt.Printf("Answer: %s\n", ex.Answer)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show LLM token usage and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		rows, err := s.Events().LLMUsage(context.Background())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No LLM calls recorded yet.")
			return nil
		}

		fmt.Printf("%-34s %6s %10s %10s %8s %10s\n",
			"Model", "Calls", "In", "Out", "Avg ms", "Cost")
		fmt.Println(strings.Repeat("─", 84))

		var totalCost float64
		priced := true
		for _, r := range rows {
			cost := "n/a"
			if c := llm.LookupCost(r.Model); c != nil {
				usd := c.Cost(r.InputTokens, r.OutputTokens)
				totalCost += usd
				cost = fmt.Sprintf("$%.4f", usd)
			} else {
				priced = false
			}
			fmt.Printf("%-34s %6d %10d %10d %8d %10s\n",
				r.Model, r.Calls, r.InputTokens, r.OutputTokens, r.AvgLatencyMs, cost)
		}

		fmt.Println(strings.Repeat("─", 84))
		suffix := ""
		if !priced {
			suffix = " (some models unpriced)"
		}
		fmt.Printf("Estimated total: $%.4f%s\n", totalCost, suffix)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmProbeCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
