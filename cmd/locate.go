package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/slidescope/internal/render"
	"github.com/agentic-research/slidescope/internal/tree"
)

func newLocateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <access-path>",
		Short: "Resolve an access path and print the node it names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := s.outputFormat()
			if err != nil {
				return err
			}
			if _, err := tree.ParseAccessPath(args[0]); err != nil {
				return err
			}
			obj, path, err := target(loadDeck(), args)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), tree.Build(obj, path, 0).Map(), format)
		},
	}
}
