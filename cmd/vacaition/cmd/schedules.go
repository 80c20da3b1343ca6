package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/api"
)

var schedulesDate string

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "List calendar schedules for a date",
	RunE:  runSchedules,
}

func runSchedules(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if schedulesDate == "" {
		schedulesDate = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", schedulesDate); err != nil {
		return fmt.Errorf("invalid --date %q, want YYYY-MM-DD", schedulesDate)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	client := api.NewClient(cfg.BackendBaseURL, cfg.AccessToken)
	schedules, err := client.ListSchedules(ctx, schedulesDate)
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		fmt.Println("no schedules for", schedulesDate)
		return nil
	}
	for _, s := range schedules {
		fmt.Printf("%s  %s  %s", s.Date, s.Location, s.Companion)
		if s.Memo != "" {
			fmt.Printf("  (%s)", s.Memo)
		}
		fmt.Println()
	}
	return nil
}

func init() {
	schedulesCmd.Flags().StringVar(&schedulesDate, "date", "", "date to list (YYYY-MM-DD, default today)")
}
