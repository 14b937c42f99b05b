package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/srs"
	"github.com/mkravets/glossa/internal/study"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show the current study queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxNew, _ := cmd.Flags().GetInt("max-new")
		maxReview, _ := cmd.Flags().GetInt("max-review")
		dueFirst, _ := cmd.Flags().GetBool("due-first")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		order := study.NewFirst
		if dueFirst {
			order = study.DueFirst
		}
		sel := study.NewSelector(s.Reviews(), order)

		q, err := sel.BuildQueue(context.Background(), ownerID(cmd), time.Now(),
			study.Caps{MaxNew: maxNew, MaxReview: maxReview})
		if err != nil {
			return err
		}

		if len(q.Items) == 0 {
			fmt.Println("Nothing to study. Come back later.")
			return nil
		}

		fmt.Printf("%d new, %d due\n", q.NewCount, q.DueCount)
		fmt.Printf("%-36s  %-10s  %-10s  %s\n", "Item", "Kind", "State", "Front")
		fmt.Println(strings.Repeat("─", 90))
		for _, it := range q.Items {
			front := it.Front
			if r := []rune(front); len(r) > 30 {
				front = string(r[:30])
			}
			fmt.Printf("%-36s  %-10s  %-10s  %s\n", it.ItemID, it.Kind, it.State, front)
		}

		if q.DueCount > 0 {
			oldest := oldestDue(q)
			if oldest != nil {
				fmt.Printf("\nOldest due: %s\n", oldest.Local().Format("2006-01-02 15:04"))
			}
		}
		return nil
	},
}

func oldestDue(q *study.Queue) *time.Time {
	var oldest *time.Time
	for _, it := range q.Items {
		if it.State == srs.StateNew || it.NextReviewDate == nil {
			continue
		}
		if oldest == nil || it.NextReviewDate.Before(*oldest) {
			oldest = it.NextReviewDate
		}
	}
	return oldest
}

func init() {
	dueCmd.Flags().Int("max-new", 0, "Cap on new items (default 20)")
	dueCmd.Flags().Int("max-review", 0, "Cap on due items (default 100)")
	dueCmd.Flags().Bool("due-first", false, "Serve the due backlog before new items")
}
