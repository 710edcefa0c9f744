// Package list provides the command that prints the synthesized regions.
package list

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/cmd/output"
	"github.com/agentstation/regionmap/pkg/regions"
)

// NewCommand creates the list command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		tree   bool
		search string
		limit  int
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List the synthesized regions",
		Long: `List synthesizes the hierarchy and prints every region in output order,
or as an indented tree with --tree.`,
		Example: `  regionmap list                           # All regions as a table
  regionmap list -o wide                   # Include paths, sides and id sources
  regionmap list --tree                    # Indented hierarchy
  regionmap list --search lobe             # Regions whose name or acronym matches
  regionmap list -o json                   # Structure descriptors as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			result, err := client.Synthesize(cmd.Context())
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if tree {
				return output.FormatTree(cmd.OutOrStdout(), result, format)
			}

			rs := Filter(result.Regions, search)
			if limit > 0 && len(rs) > limit {
				rs = rs[:limit]
			}
			return output.FormatRegions(cmd.OutOrStdout(), rs, format)
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "print the hierarchy as an indented tree")
	cmd.Flags().StringVarP(&search, "search", "s", "", "only regions whose name or acronym contains this text")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "print at most this many regions")
	cmd.MarkFlagsMutuallyExclusive("tree", "search")

	return cmd
}

// Filter returns the regions whose name or acronym contains text, ignoring case.
func Filter(rs []regions.Region, text string) []regions.Region {
	if text == "" {
		return rs
	}
	text = strings.ToLower(text)
	var out []regions.Region
	for _, r := range rs {
		if strings.Contains(strings.ToLower(r.Name), text) || strings.Contains(strings.ToLower(r.Acronym), text) {
			out = append(out, r)
		}
	}
	return out
}
