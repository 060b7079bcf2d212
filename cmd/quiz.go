package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/quiztake"
	"github.com/abhisek/edusuite/internal/tui"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Browse and take quizzes",
}

var quizListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		quizzes, err := e.client.ListQuizzes(ctx)
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			fmt.Println("No quizzes.")
			return nil
		}
		for _, q := range quizzes {
			timed := ""
			if q.IsTimed {
				timed = fmt.Sprintf("  timed %ds", q.TimeLimitSeconds)
			}
			fmt.Printf("%-5d  %-40s  %d questions%s\n", q.ID, q.Title, len(q.Questions), timed)
		}
		return nil
	},
}

var quizTakeCmd = &cobra.Command{
	Use:   "take [quiz-id]",
	Short: "Take a quiz interactively, or submit answers directly",
	Long: `Without flags this opens the interactive quiz screen. With --answer
flags (repeatable, "question-id=choice-id") the quiz is graded in one
shot; unanswered questions count against the score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctrl := quiztake.New(e.client, e.session, e.store.AttemptRepo())
		answerFlags, _ := cmd.Flags().GetStringArray("answer")

		if len(args) == 0 {
			if len(answerFlags) > 0 {
				return fmt.Errorf("--answer requires a quiz id")
			}
			quizzes, err := e.client.ListQuizzes(ctx)
			if err != nil {
				return err
			}
			return tui.Run(ctrl, quizzes)
		}

		quizID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid quiz id %q: %w", args[0], err)
		}
		quizzes, err := e.client.ListQuizzes(ctx)
		if err != nil {
			return err
		}
		idx := -1
		for i, q := range quizzes {
			if q.ID == quizID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("quiz %d not found", quizID)
		}

		if len(answerFlags) == 0 {
			return tui.Run(ctrl, quizzes[idx:idx+1])
		}

		if err := ctrl.Select(ctx, quizzes[idx]); err != nil {
			return err
		}
		for _, spec := range answerFlags {
			qStr, cStr, ok := strings.Cut(spec, "=")
			if !ok {
				return fmt.Errorf("invalid answer %q, want question-id=choice-id", spec)
			}
			questionID, err := strconv.Atoi(qStr)
			if err != nil {
				return fmt.Errorf("invalid question id %q: %w", qStr, err)
			}
			choiceID, err := strconv.Atoi(cStr)
			if err != nil {
				return fmt.Errorf("invalid choice id %q: %w", cStr, err)
			}
			if err := ctrl.Answer(questionID, choiceID); err != nil {
				return err
			}
		}

		attempt, err := ctrl.Submit(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Score: %.1f%% (%d of %d answered)\n",
			attempt.Score, ctrl.Answered(), len(ctrl.Questions()))
		return nil
	},
}

var quizHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded attempts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := e.store.AttemptRepo().Recent(limit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No attempts recorded.")
			return nil
		}
		fmt.Printf("%-19s  %-40s  %-7s  %s\n", "When", "Quiz", "Score", "Answered")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range recs {
			fmt.Printf("%-19s  %-40s  %5.1f%%  %d/%d\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.QuizTitle, r.Score, r.Answered, r.Total)
		}
		return nil
	},
}

func init() {
	quizTakeCmd.Flags().StringArray("answer", nil, `Answer as "question-id=choice-id" (repeatable)`)
	quizHistoryCmd.Flags().Int("limit", 20, "Maximum attempts to show")

	quizCmd.AddCommand(quizListCmd)
	quizCmd.AddCommand(quizTakeCmd)
	quizCmd.AddCommand(quizHistoryCmd)
}
