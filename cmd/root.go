package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/RoriShell/internal/ai"
	"github.com/Rorical/RoriShell/internal/config"
	"github.com/Rorical/RoriShell/internal/execx"
	"github.com/Rorical/RoriShell/internal/pipeline"
	"github.com/Rorical/RoriShell/internal/spinner"
	"github.com/Rorical/RoriShell/internal/utils"
)

var (
	autoApprove     bool
	modelOverride   string
	profileOverride string
)

// Exit codes: 0 success, 1 failure, 2 blocked by risk, 3 declined at the gate.
const (
	exitOK       = 0
	exitFailure  = 1
	exitBlocked  = 2
	exitDeclined = 3
)

var rootCmd = &cobra.Command{
	Use:   "rorishell [intent]",
	Short: "Another Terminal Command Agent",
	Long: `RoriShell turns a natural-language request into a vetted shell command.

The synthesized command is risk-scored by a pattern blacklist and by the
model itself, shown for confirmation, and only then executed. Commands
scoring 4/5 or higher are never run, with or without --yes.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		intent := strings.Join(args, " ")
		if code := runIntent(intent); code != exitOK {
			os.Exit(code)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitFailure)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&autoApprove, "yes", "y", false, "skip the confirmation prompt (danger level 4+ still blocks)")
	rootCmd.PersistentFlags().StringVarP(&modelOverride, "model", "m", "", "override the profile's model")
	rootCmd.PersistentFlags().StringVarP(&profileOverride, "profile", "p", "", "use a specific profile for this invocation")

	rootCmd.AddCommand(profileCmd)
}

func runIntent(intent string) int {
	spinner.HandleSignals()

	backend, err := resolveBackend()
	if err != nil {
		fail(err)
		return exitFailure
	}

	p := &pipeline.Pipeline{
		Synth:       ai.NewSynthesizer(backend),
		Gate:        &pipeline.ConsoleConfirmer{},
		Exec:        pipeline.RunnerFunc(execx.Run),
		Spin:        func(label string) pipeline.Animator { return spinner.New(label, os.Stderr) },
		Out:         os.Stdout,
		AutoApprove: autoApprove,
	}

	outcome, err := p.Run(context.Background(), intent)
	if err != nil {
		fail(err)
	}

	switch outcome {
	case pipeline.Done:
		return exitOK
	case pipeline.Blocked:
		return exitBlocked
	case pipeline.Declined:
		return exitDeclined
	default:
		return exitFailure
	}
}

// resolveBackend loads the active profile and constructs its model backend.
func resolveBackend() (ai.Backend, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if profileOverride != "" {
		if err := cfg.Use(profileOverride); err != nil {
			return nil, err
		}
	}
	if !cfg.IsValid() {
		return nil, fmt.Errorf("no API key configured; run: rorishell profile add <name>")
	}

	model := cfg.GetModel()
	if modelOverride != "" {
		model = modelOverride
	}

	return ai.Resolve(cfg.GetProvider(), ai.Options{
		APIKey:  cfg.GetAPIKey(),
		BaseURL: cfg.GetBaseURL(),
		Model:   model,
	})
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, utils.ErrorStyle().Render("Error: "+err.Error()))
}
