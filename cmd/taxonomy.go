package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/taxonomy"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		syn := taxonomy.New(e.client, e.session)
		if err := syn.RefreshAll(ctx); err != nil {
			return err
		}
		subjects := syn.Subjects()
		if len(subjects) == 0 {
			fmt.Println("No subjects.")
			return nil
		}
		topicsBySubject := map[int]int{}
		for _, t := range syn.Topics() {
			topicsBySubject[t.Subject]++
		}
		for _, s := range subjects {
			fmt.Printf("%-4d  %-30s  %d topics\n", s.ID, s.Name, topicsBySubject[s.ID])
		}
		return nil
	},
}

var subjectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		syn := taxonomy.New(e.client, e.session)
		if err := syn.CreateSubject(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Created subject %q.\n", args[0])
		return nil
	},
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		syn := taxonomy.New(e.client, e.session)
		if err := syn.RefreshAll(ctx); err != nil {
			return err
		}
		subjectName := map[int]string{}
		for _, s := range syn.Subjects() {
			subjectName[s.ID] = s.Name
		}
		topics := syn.Topics()
		if len(topics) == 0 {
			fmt.Println("No topics.")
			return nil
		}
		for _, t := range topics {
			fmt.Printf("%-4d  %-30s  %s\n", t.ID, t.Name, subjectName[t.Subject])
		}
		return nil
	},
}

var topicsAddCmd = &cobra.Command{
	Use:   "add <subject-id> <name>",
	Short: "Create a topic under a subject",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		subjectID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid subject id %q: %w", args[0], err)
		}
		syn := taxonomy.New(e.client, e.session)
		if err := syn.CreateTopic(ctx, subjectID, args[1]); err != nil {
			return err
		}
		fmt.Printf("Created topic %q.\n", args[1])
		return nil
	},
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List chapters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		syn := taxonomy.New(e.client, e.session)
		if err := syn.RefreshAll(ctx); err != nil {
			return err
		}
		topicName := map[int]string{}
		for _, t := range syn.Topics() {
			topicName[t.ID] = t.Name
		}
		chapters := syn.Chapters()
		if len(chapters) == 0 {
			fmt.Println("No chapters.")
			return nil
		}
		for _, c := range chapters {
			fmt.Printf("%-4d  %-30s  %s\n", c.ID, c.Title, topicName[c.Topic])
		}
		return nil
	},
}

var chaptersAddCmd = &cobra.Command{
	Use:   "add <topic-id> <title>",
	Short: "Create a chapter under a topic",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		topicID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid topic id %q: %w", args[0], err)
		}
		syn := taxonomy.New(e.client, e.session)
		if err := syn.CreateChapter(ctx, topicID, args[1]); err != nil {
			return err
		}
		fmt.Printf("Created chapter %q.\n", args[1])
		return nil
	},
}

func init() {
	subjectsCmd.AddCommand(subjectsAddCmd)
	topicsCmd.AddCommand(topicsAddCmd)
	chaptersCmd.AddCommand(chaptersAddCmd)
}
