package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate against the platform and save the credential",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		username := ""
		if len(args) == 1 {
			username = args[0]
		} else {
			fmt.Print("Username: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		if username == "" {
			return fmt.Errorf("username is required")
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			fmt.Print("Password: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = string(raw)
		}

		if err := e.session.Login(ctx, username, password); err != nil {
			return err
		}
		id := e.session.Identity()
		fmt.Printf("Logged in as %s (id %d).\n", id.Username, id.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the saved credential",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.session.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := newEnv(ctx, cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		id := e.session.Identity()
		if id == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s (id %d)\n", id.Username, id.ID)
		if id.Email != "" {
			fmt.Printf("Email: %s\n", id.Email)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "Password (prompted when omitted)")
}
