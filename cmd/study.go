package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show your aggregate quiz performance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		d, err := e.client.Dashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Attempts:      %d\n", d.NumAttempts)
		fmt.Printf("Average score: %.1f%%\n", d.AvgScore)
		if len(d.Subjects) > 0 {
			fmt.Println("\nBy subject:")
			for _, s := range d.Subjects {
				name := "(no subject)"
				if s.Name != nil {
					name = *s.Name
				}
				fmt.Printf("  %-30s  %5.1f%%\n", name, s.Avg)
			}
		}
		return nil
	},
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "List your bookmarks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		marks, err := e.client.ListBookmarks(ctx)
		if err != nil {
			return err
		}
		if len(marks) == 0 {
			fmt.Println("No bookmarks.")
			return nil
		}
		for _, b := range marks {
			target := "-"
			if b.Resource != nil {
				target = fmt.Sprintf("resource %d", *b.Resource)
			} else if b.Quiz != nil {
				target = fmt.Sprintf("quiz %d", *b.Quiz)
			}
			fmt.Printf("%-5d  %s\n", b.ID, target)
		}
		return nil
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add <resource-id>",
	Short: "Bookmark a resource",
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
		id := e.session.Identity()
		if id == nil {
			return fmt.Errorf("not logged in")
		}
		mark, err := e.client.AddBookmark(ctx, id.ID, resourceID)
		if err != nil {
			return err
		}
		fmt.Printf("Bookmarked (id %d).\n", mark.ID)
		return nil
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove <bookmark-id>",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		bookmarkID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid bookmark id %q: %w", args[0], err)
		}
		if err := e.client.RemoveBookmark(ctx, bookmarkID); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		notes, err := e.client.ListNotifications(ctx)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notifications.")
			return nil
		}
		for _, n := range notes {
			marker := "•"
			if n.IsRead {
				marker = " "
			}
			fmt.Printf("%s %-5d %-40s %s\n", marker, n.ID, n.Title,
				n.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		notificationID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid notification id %q: %w", args[0], err)
		}
		if err := e.client.MarkNotificationRead(ctx, notificationID); err != nil {
			return err
		}
		fmt.Println("Marked as read.")
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track topic completion",
}

var progressCompleteCmd = &cobra.Command{
	Use:   "complete <topic-id>",
	Short: "Mark a topic as completed",
	Args:  cobra.ExactArgs(1),
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
		if _, err := e.client.MarkTopicComplete(ctx, topicID); err != nil {
			return err
		}
		fmt.Printf("Topic %d marked complete.\n", topicID)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <question>",
	Short: "Ask the study assistant about uploaded materials",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		answer, err := e.client.Chat(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(answer.Answer)
		if answer.ResourceTitle != nil {
			fmt.Printf("\n(based on %q)\n", *answer.ResourceTitle)
		}
		return nil
	},
}

func init() {
	bookmarksCmd.AddCommand(bookmarksAddCmd)
	bookmarksCmd.AddCommand(bookmarksRemoveCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	progressCmd.AddCommand(progressCompleteCmd)
}
