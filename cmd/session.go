package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkravets/glossa/internal/content"
	"github.com/mkravets/glossa/internal/llm"
	"github.com/mkravets/glossa/internal/practice"
	"github.com/mkravets/glossa/internal/review"
	"github.com/mkravets/glossa/internal/srs"
	"github.com/mkravets/glossa/internal/store"
	"github.com/mkravets/glossa/internal/study"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Run an adaptive practice session",
	Long: `Runs an interactive practice session. Exercises are generated by an
LLM at the session's current difficulty; accuracy over a rolling window
moves the difficulty up or down. Answers also feed the review schedule.`,
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().Int("count", 10, "Number of exercises in the session")
	sessionCmd.Flags().String("language", "Spanish", "Language being learned")
	sessionCmd.Flags().String("difficulty", "", "Override the starting difficulty (easy, medium, hard)")
}

func runSession(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	language, _ := cmd.Flags().GetString("language")
	override, _ := cmd.Flags().GetString("difficulty")

	s, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	owner := ownerID(cmd)

	provider, err := buildProvider(ctx, s)
	if err != nil {
		return err
	}
	gen := content.New(provider, content.Config{})

	sched, err := srs.NewScheduler(srs.Config{})
	if err != nil {
		return err
	}
	reviews := review.NewService(sched, s.Reviews(), s.Events())

	start, err := startingDifficulty(ctx, s, owner, override)
	if err != nil {
		return err
	}

	sel := study.NewSelector(s.Reviews(), study.NewFirst)
	queue, err := sel.BuildQueue(ctx, owner, time.Now(), study.Caps{})
	if err != nil {
		return err
	}
	if len(queue.Items) == 0 {
		fmt.Println("No items to practice. Import a deck first: glossa import <file>")
		return nil
	}

	sess, err := practice.NewSession(owner, start, practice.DefaultConfig(), time.Now())
	if err != nil {
		return err
	}
	if err := s.Sessions().Save(ctx, sess); err != nil {
		return err
	}

	fmt.Printf("Practice session started at %s difficulty. Type \"quit\" to stop early.\n\n", start)

	in := bufio.NewScanner(os.Stdin)
	for i := 0; i < count; i++ {
		item := queue.Items[i%len(queue.Items)]

		ex, err := gen.Generate(ctx, content.Input{
			Word:        item.Front,
			Translation: item.Back,
			Language:    language,
			Kind:        content.KindCloze,
			Difficulty:  sess.CurrentDifficulty,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping exercise: %v\n", err)
			continue
		}

		fmt.Printf("[%d/%d] %s\n", i+1, count, ex.Prompt)
		if ex.Hint != "" {
			fmt.Printf("       hint: %s\n", ex.Hint)
		}
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		answer := strings.TrimSpace(in.Text())
		if strings.EqualFold(answer, "quit") {
			break
		}

		correct := content.CheckAnswer(answer, ex)
		if correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Not quite. Answer: %s\n", ex.Answer)
		}
		if ex.Explanation != "" {
			fmt.Printf("  %s\n", ex.Explanation)
		}
		fmt.Println()

		gradeFromPractice(ctx, reviews, owner, item.ItemID, correct)

		adj, err := sess.Record(correct, time.Now())
		if err != nil {
			return err
		}
		if adj != nil {
			if err := s.Sessions().AppendAdjustment(ctx, sess.ID, *adj); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not record difficulty change: %v\n", err)
			}
			fmt.Printf("Difficulty adjusted (%s): %s -> %s\n\n",
				adj.Reason, adj.From, adj.To)
		}
		if err := s.Sessions().Save(ctx, sess); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save session: %v\n", err)
		}
	}

	rating := askRating(in)
	if err := sess.Complete(rating, time.Now()); err != nil {
		return err
	}
	if err := s.Sessions().Save(ctx, sess); err != nil {
		return err
	}

	fmt.Printf("\nSession complete: %d/%d correct (%.0f%%), finished at %s difficulty.\n",
		sess.TotalCorrect, sess.TotalAttempted, sess.Accuracy()*100, sess.CurrentDifficulty)
	return nil
}

// buildProvider wires the configured LLM provider with retry and request
// logging. Explicit GLOSSA_* configuration wins; otherwise standard API key
// env vars are probed.
func buildProvider(ctx context.Context, s *store.Store) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("no LLM provider configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewProvider(ctx, cfg, s.Events())
}

// startingDifficulty seeds the session level from the previous completed
// session and its subjective rating, unless overridden on the command line.
func startingDifficulty(ctx context.Context, s *store.Store, owner, override string) (practice.Difficulty, error) {
	if override != "" {
		d := practice.Difficulty(override)
		if !d.IsValid() {
			return "", fmt.Errorf("%w: %q", practice.ErrInvalidDifficulty, override)
		}
		return d, nil
	}

	prev, err := s.Sessions().LastCompleted(ctx, owner)
	if errors.Is(err, store.ErrNotFound) {
		return practice.DifficultyMedium, nil
	}
	if err != nil {
		return "", err
	}
	return practice.StartingDifficulty(prev.CurrentDifficulty, practice.SubjectiveRating(prev.Rating)), nil
}

// gradeFromPractice folds a practice result into the review schedule with
// the restricted grade convention: a miss is 1, a hit is 4. Items outside
// the curriculum are left alone.
func gradeFromPractice(ctx context.Context, svc *review.Service, owner, itemID string, correct bool) {
	grade := srs.Grade(4)
	if !correct {
		grade = srs.Grade(1)
	}
	if _, err := svc.GradeItem(ctx, owner, itemID, grade, time.Now()); err != nil {
		if !errors.Is(err, review.ErrNotTracked) {
			fmt.Fprintf(os.Stderr, "warning: could not update schedule for %s: %v\n", itemID, err)
		}
	}
}

// askRating collects the learner's subjective verdict on the session.
func askRating(in *bufio.Scanner) practice.SubjectiveRating {
	fmt.Println("How did that feel? (1) too easy  (2) just right  (3) too hard")
	fmt.Print("> ")
	if !in.Scan() {
		return practice.RatingJustRight
	}
	switch strings.TrimSpace(in.Text()) {
	case "1":
		return practice.RatingTooEasy
	case "3":
		return practice.RatingTooHard
	default:
		return practice.RatingJustRight
	}
}
