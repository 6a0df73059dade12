package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/slidescope/internal/config"
	"github.com/agentic-research/slidescope/internal/deck"
	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/render"
	"github.com/agentic-research/slidescope/internal/sample"
)

// loadDeck supplies the presentation the commands inspect.
var loadDeck = sample.Deck

// session is the state shared by subcommands of one invocation.
type session struct {
	cfg    config.Config
	format string
}

// outputFormat resolves --format against the configured default.
func (s *session) outputFormat() (render.Format, error) {
	if s.format == "" {
		return s.cfg.Format, nil
	}
	return render.ParseFormat(s.format)
}

// target returns the presentation, or the object at path when one is given.
func target(prs *deck.Presentation, args []string) (introspect.Object, string, error) {
	if len(args) == 0 || args[0] == "" {
		return prs, "", nil
	}
	obj, err := prs.Locate(args[0])
	if err != nil {
		return nil, "", err
	}
	return obj, args[0], nil
}

func newRootCmd() *cobra.Command {
	s := &session{cfg: config.Default()}
	root := &cobra.Command{
		Use:           "slidescope",
		Short:         "Slidescope: introspect a presentation object model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Printf("config: %v (using defaults)", err)
				cfg = config.Default()
			}
			s.cfg = cfg
		},
	}
	root.PersistentFlags().StringVarP(&s.format, "format", "o", "", "Output format: json or yaml")

	root.AddCommand(newDictCmd(s), newTreeCmd(s), newLocateCmd(s))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
