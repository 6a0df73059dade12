package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/slidescope/internal/query"
	"github.com/agentic-research/slidescope/internal/render"
	"github.com/agentic-research/slidescope/internal/tree"
)

func newTreeCmd(s *session) *cobra.Command {
	var (
		depth    int
		selector string
	)
	cmd := &cobra.Command{
		Use:   "tree [access-path]",
		Short: "Print the wide-angle tree of the presentation or of a subtree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := s.outputFormat()
			if err != nil {
				return err
			}
			obj, path, err := target(loadDeck(), args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("depth") {
				depth = s.cfg.TreeDepth
			}
			node := tree.Build(obj, path, depth).Map()
			if selector == "" {
				return render.Write(cmd.OutOrStdout(), node, format)
			}
			matches, err := query.Select(node, selector)
			if err != nil {
				return err
			}
			return render.Write(cmd.OutOrStdout(), matches, format)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", tree.DefaultMaxDepth, "Levels of children to include")
	cmd.Flags().StringVar(&selector, "select", "", "JSONPath applied to the tree")
	return cmd
}
