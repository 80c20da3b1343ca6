package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/api"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List chat sessions",
	RunE:  runSessions,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func runSessions(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	client := api.NewClient(cfg.BackendBaseURL, cfg.AccessToken)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	sessions, err := client.ListSessions(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions yet")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  (%s)\n", s.ID, s.Title, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	client := api.NewClient(cfg.BackendBaseURL, cfg.AccessToken)

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	if err := client.DeleteSession(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted", args[0])
	return nil
}

func init() {
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
