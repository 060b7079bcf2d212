package cmd

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/edusuite/internal/api"
	"github.com/abhisek/edusuite/internal/config"
	"github.com/abhisek/edusuite/internal/session"
	"github.com/abhisek/edusuite/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "edusuite",
	Short: "Terminal client for the EduSuite learning platform",
	Long:  "EduSuite — browse study resources, take quizzes, and draft AI-generated quizzes from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-base", "", "API base URL (overrides EDUSUITE_API_BASE env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EDUSUITE_DB env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(homeworkCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(bookmarksCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is the wired-up client state shared by all commands: local store,
// API gateway, and the session that feeds the gateway its credential.
type env struct {
	cfg     config.Config
	store   *store.Store
	client  *api.Client
	session *session.Session
}

// newEnv resolves configuration (.env file, config file, env vars, then
// flags), opens the local store, and wires the gateway to the session.
// The stored credential is recovered and its identity checked before
// the first command logic runs.
func newEnv(ctx context.Context, cmd *cobra.Command) (*env, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("api-base"); v != "" {
		cfg.APIBase = v
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}

	dbPath := cfg.DB
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	client := api.New(cfg.APIBase, api.WithRecorder(st.EventRepo()))
	sess := session.New(client, st.CredentialRepo())
	client.SetCredentials(sess)
	sess.Load(ctx)

	return &env{cfg: cfg, store: st, client: client, session: sess}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}
