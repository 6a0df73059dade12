package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/slidescope/internal/introspect"
	"github.com/agentic-research/slidescope/internal/query"
	"github.com/agentic-research/slidescope/internal/render"
)

type dictFlags struct {
	maxDepth        int
	fields          []string
	noRelationships bool
	collapse        bool
	noLLM           bool
	private         bool
	selector        string
}

func newDictCmd(s *session) *cobra.Command {
	var fl dictFlags
	cmd := &cobra.Command{
		Use:   "dict [access-path]",
		Short: "Serialize the presentation, or the object at an access path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := s.outputFormat()
			if err != nil {
				return err
			}
			obj, _, err := target(loadDeck(), args)
			if err != nil {
				return err
			}

			opts := s.cfg.Options()
			if cmd.Flags().Changed("max-depth") {
				opts.MaxDepth = fl.maxDepth
			}
			if cmd.Flags().Changed("fields") {
				opts.Fields = fl.fields
				if opts.Fields == nil {
					opts.Fields = []string{}
				}
			}
			opts.IncludeRelationships = !fl.noRelationships
			if fl.collapse {
				opts.ExpandCollections = false
			}
			if fl.noLLM {
				opts.FormatForLLM = false
			}
			opts.IncludePrivate = fl.private

			var out any = introspect.Serialize(obj, opts)
			if fl.selector != "" {
				if out, err = query.Select(out, fl.selector); err != nil {
					return err
				}
			}
			return render.Write(cmd.OutOrStdout(), out, format)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&fl.maxDepth, "max-depth", "d", 3, "Maximum nesting depth")
	f.StringSliceVarP(&fl.fields, "fields", "f", nil, "Dot-separated field paths to include (comma separated or repeated)")
	f.BoolVar(&fl.noRelationships, "no-relationships", false, "Omit the relationships block")
	f.BoolVar(&fl.collapse, "collapse", false, "Summarize collections instead of expanding them")
	f.BoolVar(&fl.noLLM, "no-llm", false, "Omit the natural-language context block")
	f.BoolVar(&fl.private, "private", false, "Include private data fields")
	f.StringVar(&fl.selector, "select", "", "JSONPath applied to the result")
	return cmd
}
