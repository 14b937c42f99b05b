package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/deck"
	"github.com/mkravets/glossa/internal/review"
	"github.com/mkravets/glossa/internal/srs"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a flashcard deck from a CSV or XLSX file",
	Long: `Imports cards from a spreadsheet (front in column A, back in column B)
and tracks them for review. Re-importing a deck updates changed
translations without resetting review progress.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		deckName, _ := cmd.Flags().GetString("deck")
		if deckName == "" {
			base := filepath.Base(path)
			deckName = strings.TrimSuffix(base, filepath.Ext(base))
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

		im := deck.NewImporter(s.Items(), svc)
		res, err := im.Import(context.Background(), ownerID(cmd), deckName, path)
		if err != nil {
			return err
		}

		fmt.Printf("Deck %q: %d rows processed\n", deckName, res.TotalProcessed)
		fmt.Printf("  created: %d\n", res.Created)
		fmt.Printf("  updated: %d\n", res.Updated)
		fmt.Printf("  skipped: %d\n", res.Skipped)
		if len(res.Errors) > 0 {
			fmt.Printf("  problems: %d\n", len(res.Errors))
			for _, e := range res.Errors {
				fmt.Printf("    - %s\n", e)
			}
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("deck", "", "Deck name (default: file name without extension)")
}
