package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Use(args[0]); err != nil {
			log.Fatalf("%v", err)
		}
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
