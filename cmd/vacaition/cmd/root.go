package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canit0221/RA6-vacAItion-sub000/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "vacaition",
	Short: "vacAItion vacation planning chat client",
	Long:  "Chat with the vacation-planning assistant, collect its recommendations, and promote them onto the calendar.",
}

// loadConfig reads configuration or exits with a usable message.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(schedulesCmd)
}
