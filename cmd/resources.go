package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/resources"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List study resources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var filter api.ResourceFilter
		filter.Query, _ = cmd.Flags().GetString("query")
		filter.Subject, _ = cmd.Flags().GetInt("subject")
		filter.Topic, _ = cmd.Flags().GetInt("topic")
		filter.Chapter, _ = cmd.Flags().GetInt("chapter")
		filter.Difficulty, _ = cmd.Flags().GetString("difficulty")
		filter.FileType, _ = cmd.Flags().GetString("filetype")

		mgr := resources.New(e.client, e.session)
		mgr.SetFilter(filter)
		if err := mgr.Refresh(ctx); err != nil {
			return err
		}

		items := mgr.Items()
		if len(items) == 0 {
			fmt.Println("No resources.")
			return nil
		}
		fmt.Printf("%-5s  %-40s  %-10s  %-8s  %s\n", "ID", "Title", "Difficulty", "Versions", "Latest")
		fmt.Println(strings.Repeat("─", 90))
		for _, r := range items {
			latest := "-"
			if v := resources.Latest(r); v != nil {
				latest = fmt.Sprintf("v%d %s", v.VersionNumber, v.CreatedAt.Local().Format("2006-01-02"))
			}
			title := r.Title
			if len(title) > 40 {
				title = title[:40]
			}
			fmt.Printf("%-5d  %-40s  %-10s  %-8d  %s\n", r.ID, title, r.Difficulty, len(r.Versions), latest)
		}
		return nil
	},
}

var resourcesCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a resource, optionally with an initial file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var fields api.ResourceFields
		fields.Title = args[0]
		fields.Description, _ = cmd.Flags().GetString("description")
		fields.Subject, _ = cmd.Flags().GetInt("subject")
		fields.Topic, _ = cmd.Flags().GetInt("topic")
		fields.Chapter, _ = cmd.Flags().GetInt("chapter")
		fields.Difficulty, _ = cmd.Flags().GetString("difficulty")
		fields.Tags, _ = cmd.Flags().GetString("tags")

		var payload *api.FilePayload
		if path, _ := cmd.Flags().GetString("file"); path != "" {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()
			payload = &api.FilePayload{Name: filepath.Base(path), Reader: f}
		}

		mgr := resources.New(e.client, e.session)
		res, err := mgr.Create(ctx, fields, payload)
		if err != nil {
			return err
		}
		fmt.Printf("Created resource %d: %s\n", res.ID, res.Title)
		if payload != nil {
			fmt.Println("Initial file stored as version 1.")
		}
		return nil
	},
}

var resourcesUploadCmd = &cobra.Command{
	Use:   "upload <resource-id> <file>",
	Short: "Append a new file version to a resource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		resourceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid resource id %q: %w", args[0], err)
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		notes, _ := cmd.Flags().GetString("notes")
		mgr := resources.New(e.client, e.session)
		ver, err := mgr.UploadVersion(ctx, resourceID,
			api.FilePayload{Name: filepath.Base(args[1]), Reader: f}, notes)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded version %d.\n", ver.VersionNumber)
		return nil
	},
}

var resourcesVersionsCmd = &cobra.Command{
	Use:   "versions <resource-id>",
	Short: "Show a resource's version history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		resourceID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid resource id %q: %w", args[0], err)
		}

		mgr := resources.New(e.client, e.session)
		if err := mgr.Refresh(ctx); err != nil {
			return err
		}
		for _, r := range mgr.Items() {
			if r.ID != resourceID {
				continue
			}
			if len(r.Versions) == 0 {
				fmt.Println("No versions.")
				return nil
			}
			for _, v := range r.Versions {
				notes := v.Notes
				if notes == "" {
					notes = "-"
				}
				fmt.Printf("v%-3d  %-19s  %-30s  %s\n",
					v.VersionNumber, v.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					filepath.Base(v.File), notes)
			}
			return nil
		}
		return fmt.Errorf("resource %d not found", resourceID)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search resources and quizzes",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		result, err := e.client.Search(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(result.Resources) == 0 && len(result.Quizzes) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		if len(result.Resources) > 0 {
			fmt.Println("Resources:")
			for _, r := range result.Resources {
				fmt.Printf("  %-5d %s\n", r.ID, r.Title)
			}
		}
		if len(result.Quizzes) > 0 {
			fmt.Println("Quizzes:")
			for _, q := range result.Quizzes {
				fmt.Printf("  %-5d %s\n", q.ID, q.Title)
			}
		}
		return nil
	},
}

func init() {
	resourcesCmd.Flags().String("query", "", "Free-text search query")
	resourcesCmd.Flags().Int("subject", 0, "Filter by subject id")
	resourcesCmd.Flags().Int("topic", 0, "Filter by topic id")
	resourcesCmd.Flags().Int("chapter", 0, "Filter by chapter id")
	resourcesCmd.Flags().String("difficulty", "", "Filter by difficulty")
	resourcesCmd.Flags().String("filetype", "", "Filter by file type")

	resourcesCreateCmd.Flags().String("description", "", "Resource description")
	resourcesCreateCmd.Flags().Int("subject", 0, "Subject id")
	resourcesCreateCmd.Flags().Int("topic", 0, "Topic id")
	resourcesCreateCmd.Flags().Int("chapter", 0, "Chapter id")
	resourcesCreateCmd.Flags().String("difficulty", "", "Difficulty (easy/medium/hard)")
	resourcesCreateCmd.Flags().String("tags", "", "Comma-separated tags")
	resourcesCreateCmd.Flags().String("file", "", "Initial file (becomes version 1)")

	resourcesUploadCmd.Flags().String("notes", "", "Version notes")

	resourcesCmd.AddCommand(resourcesCreateCmd)
	resourcesCmd.AddCommand(resourcesUploadCmd)
	resourcesCmd.AddCommand(resourcesVersionsCmd)
}
