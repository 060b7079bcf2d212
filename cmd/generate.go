package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/aigen"
	"github.com/abhisek/edusuite/internal/api"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft quiz questions from study material",
	Long: `Generates a question draft from --text and/or --file and prints it
for review. Nothing is created on the platform unless --commit is given
a quiz title; without it the draft is discarded when the command exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		text, _ := cmd.Flags().GetString("text")
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("commit")

		var payload *api.FilePayload
		if filePath != "" {
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()
			payload = &api.FilePayload{Name: filepath.Base(filePath), Reader: f}
		}

		pipe := aigen.New(e.client, e.session, nil)
		if err := pipe.Generate(ctx, text, payload); err != nil {
			return err
		}

		draft := pipe.Draft()
		fmt.Printf("Draft: %d questions\n\n", len(draft))
		for i, q := range draft {
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for _, c := range q.Choices {
				marker := " "
				if c.IsCorrect {
					marker = "*"
				}
				fmt.Printf("   %s %s\n", marker, c.Text)
			}
			fmt.Println()
		}

		if title == "" {
			fmt.Println("Draft discarded. Re-run with --commit <title> to create the quiz.")
			return nil
		}

		quiz, err := pipe.Commit(ctx, title)
		if err != nil {
			return err
		}
		fmt.Printf("Created quiz %d: %s\n", quiz.ID, quiz.Title)
		return nil
	},
}

func init() {
	generateCmd.Flags().String("text", "", "Source text to generate from")
	generateCmd.Flags().String("file", "", "Source file to generate from")
	generateCmd.Flags().String("commit", "", "Create the quiz under this title after review")
}
