package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/api"
)

var homeworkCmd = &cobra.Command{
	Use:   "homework",
	Short: "List homework assignments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		items, err := e.client.ListHomeworks(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No homework.")
			return nil
		}
		for _, h := range items {
			fmt.Printf("%-5d  %-40s  due %s\n", h.ID, h.Title,
				h.DueDate.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var homeworkCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a homework assignment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := e.session.Identity()
		if id == nil {
			return fmt.Errorf("not logged in")
		}

		dueStr, _ := cmd.Flags().GetString("due")
		due, err := time.ParseInLocation("2006-01-02 15:04", dueStr, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --due %q, want \"2006-01-02 15:04\": %w", dueStr, err)
		}
		description, _ := cmd.Flags().GetString("description")

		hw, err := e.client.CreateHomework(ctx, id.ID, args[0], description, due)
		if err != nil {
			return err
		}
		fmt.Printf("Created homework %d: %s\n", hw.ID, hw.Title)
		return nil
	},
}

var homeworkSubmitCmd = &cobra.Command{
	Use:   "submit <homework-id>",
	Short: "Submit an answer, as text and/or a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := e.session.Identity()
		if id == nil {
			return fmt.Errorf("not logged in")
		}

		homeworkID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid homework id %q: %w", args[0], err)
		}
		text, _ := cmd.Flags().GetString("text")
		filePath, _ := cmd.Flags().GetString("file")
		if text == "" && filePath == "" {
			return fmt.Errorf("nothing to submit: give --text and/or --file")
		}

		var payload *api.FilePayload
		if filePath != "" {
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()
			payload = &api.FilePayload{Name: filepath.Base(filePath), Reader: f}
		}

		sub, err := e.client.SubmitHomework(ctx, homeworkID, id.ID, text, payload)
		if err != nil {
			return err
		}
		fmt.Printf("Submitted (id %d).\n", sub.ID)
		return nil
	},
}

var homeworkSubmissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "List homework submissions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		subs, err := e.client.ListSubmissions(ctx)
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Println("No submissions.")
			return nil
		}
		for _, s := range subs {
			grade := "ungraded"
			if s.Grade != nil {
				grade = fmt.Sprintf("%.1f", *s.Grade)
			}
			fmt.Printf("%-5d  homework %-5d  student %-5d  %-10s  %s\n",
				s.ID, s.Homework, s.Student, grade,
				s.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	homeworkCreateCmd.Flags().String("description", "", "Assignment description")
	homeworkCreateCmd.Flags().String("due", "", `Due date as "2006-01-02 15:04" (local time)`)
	homeworkSubmitCmd.Flags().String("text", "", "Text response")
	homeworkSubmitCmd.Flags().String("file", "", "File to attach")

	homeworkCmd.AddCommand(homeworkCreateCmd)
	homeworkCmd.AddCommand(homeworkSubmitCmd)
	homeworkCmd.AddCommand(homeworkSubmissionsCmd)
}
