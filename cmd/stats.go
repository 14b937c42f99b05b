package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/srs"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		owner := ownerID(cmd)

		byState, err := s.Reviews().CountByState(ctx, owner)
		if err != nil {
			return err
		}
		due, err := s.Reviews().CountDue(ctx, owner, time.Now())
		if err != nil {
			return err
		}
		ease, err := s.Reviews().AverageEase(ctx, owner)
		if err != nil {
			return err
		}
		total, err := s.Events().CountReviews(ctx, owner)
		if err != nil {
			return err
		}

		tracked := 0
		for _, n := range byState {
			tracked += n
		}

		fmt.Printf("Profile: %s\n\n", owner)
		fmt.Printf("Tracked items:  %d\n", tracked)
		fmt.Printf("  new:          %d\n", byState[srs.StateNew])
		fmt.Printf("  learning:     %d\n", byState[srs.StateLearning])
		fmt.Printf("  review:       %d\n", byState[srs.StateReview])
		fmt.Printf("  relearning:   %d\n", byState[srs.StateRelearning])
		fmt.Printf("Due now:        %d\n", due)
		fmt.Printf("Average ease:   %.2f\n", ease)
		fmt.Printf("Total reviews:  %d\n", total)
		return nil
	},
}
