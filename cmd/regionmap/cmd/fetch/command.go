// Package fetch provides the command that downloads the dataset sources.
package fetch

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/cmd/output"
	"github.com/agentstation/regionmap/internal/fetch"
	"github.com/agentstation/regionmap/pkg/dataset"
)

// Source is one resolved input file.
type Source struct {
	Role   string `json:"role" yaml:"role"`
	Path   string `json:"path" yaml:"path"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

// Reachability is the result of probing one source URL.
type Reachability struct {
	Role   string `json:"role" yaml:"role"`
	URL    string `json:"url" yaml:"url"`
	Status string `json:"status" yaml:"status"`
}

// NewCommand creates the fetch command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "fetch",
		GroupID: "core",
		Short:   "Download and verify the dataset sources",
		Long: `Fetch downloads the hierarchy table and the annotation volume of the
dataset into the cache directory and verifies their sha256. Files already
cached with the expected hash are reused. Inputs given as local files are
only hashed.

With --check, nothing is downloaded; every source URL of the profile is
probed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}
			format := output.DetectFormat(app.OutputFormat())

			if check {
				results, err := Check(cmd.Context(), fetch.New(""), client.Profile().Sources)
				if fmtErr := output.FormatAny(cmd.OutOrStdout(), results, format); fmtErr != nil {
					return fmtErr
				}
				return err
			}

			src, err := client.Sources(cmd.Context())
			if err != nil {
				return err
			}

			sources := []Source{
				{Role: "hierarchy", Path: src.HierarchyFile, SHA256: src.HierarchySHA256},
				{Role: "annotation", Path: src.AnnotationFile, SHA256: src.AnnotationSHA256},
			}
			return output.FormatAny(cmd.OutOrStdout(), sources, format)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only check that the source URLs are reachable")

	return cmd
}

// Check probes the URL of every configured source. The returned error is
// the first failure; every source is still reported.
func Check(ctx context.Context, f *fetch.Fetcher, sources dataset.Sources) ([]Reachability, error) {
	var firstErr error
	var results []Reachability
	for _, s := range []struct {
		role string
		src  dataset.Source
	}{
		{"hierarchy", sources.Hierarchy},
		{"annotation", sources.Annotation},
		{"template", sources.Template},
	} {
		if s.src.URL == "" {
			continue
		}
		status := "ok"
		if err := f.CheckConnectivity(ctx, s.src.URL); err != nil {
			status = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, Reachability{Role: s.role, URL: s.src.URL, Status: status})
	}
	return results, firstErr
}
