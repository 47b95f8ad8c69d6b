package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/ai"
	"github.com/Rorical/RoriShell/internal/spinner"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the model a question without running anything",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		spinner.HandleSignals()

		backend, err := resolveBackend()
		if err != nil {
			fail(err)
			os.Exit(exitFailure)
		}

		question := strings.Join(args, " ")

		spin := spinner.New("Thinking", os.Stderr)
		spin.Start()
		answer, err := ai.Complete(context.Background(), backend, ai.AskPrompt, question)
		spin.Stop()

		if err != nil {
			fail(err)
			os.Exit(exitFailure)
		}
		fmt.Println(strings.TrimSpace(answer))
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
