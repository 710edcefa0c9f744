// Package build provides the command that synthesizes the hierarchy and
// writes the structures and metadata documents.
package build

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/cmd/output"
	"github.com/agentstation/regionmap/pkg/save"
)

// NewCommand creates the build command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		dir        string
		fileFormat string
		force      bool
	)

	cmd := &cobra.Command{
		Use:     "build",
		GroupID: "core",
		Short:   "Synthesize the hierarchy and write the atlas documents",
		Long: `Build reads the hierarchy table and the annotation labels, synthesizes the
region hierarchy and writes structures.json and metadata.json into the
output directory. Existing files are kept unless --force is given.`,
		Example: `  regionmap build                          # Download inputs and build into ./regionmap-out
  regionmap build -d atlas --force         # Rebuild into ./atlas
  regionmap build --file-format yaml       # Write structures.yaml and metadata.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := save.ParseFormat(fileFormat)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = app.OutputDir()
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			manifest, err := client.Package(cmd.Context(),
				save.WithPath(dir),
				save.WithFormat(format),
				save.WithOverwrite(force),
			)
			if err != nil {
				return err
			}

			return output.FormatAny(cmd.OutOrStdout(), manifest.Files, output.DetectFormat(app.OutputFormat()))
		},
	}

	cmd.Flags().StringVarP(&dir, "output-dir", "d", "", "directory to write into (default from config, or ./regionmap-out)")
	cmd.Flags().StringVar(&fileFormat, "file-format", "json", "document format: json or yaml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing documents")

	return cmd
}
