package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/review"
	"github.com/mkravets/glossa/internal/srs"
)

var reviewCmd = &cobra.Command{
	Use:   "review <item-id> <grade>",
	Short: "Grade a review of one item",
	Long: `Applies one graded review to an item's schedule. Grades run 0-5:
0-2 failed recall, 3-4 successful recall, 5 effortless recall.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID := args[0]
		g, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid grade %q: %w", args[1], err)
		}
		grade := srs.Grade(g)
		if !grade.IsValid() {
			return fmt.Errorf("grade %d out of range 0-5", g)
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		sched, err := srs.NewScheduler(srs.Config{})
		if err != nil {
			return err
		}
		svc := review.NewService(sched, s.Reviews(), s.Events())

		ctx := context.Background()
		owner := ownerID(cmd)

		track, _ := cmd.Flags().GetBool("track")
		if track {
			if err := svc.Track(ctx, owner, itemID); err != nil {
				return err
			}
		}

		rs, err := svc.GradeItem(ctx, owner, itemID, grade, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("State:     %s\n", rs.State)
		fmt.Printf("Ease:      %.2f\n", rs.EaseFactor)
		if rs.State == srs.StateReview {
			fmt.Printf("Interval:  %.1f days\n", rs.IntervalDays)
		}
		if rs.NextReviewDate != nil {
			fmt.Printf("Next due:  %s\n", rs.NextReviewDate.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Bool("track", false, "Track the item first if it is not in the curriculum yet")
}
