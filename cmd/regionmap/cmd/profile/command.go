// Package profile provides the command that prints dataset profiles.
package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/cmd/output"
	"github.com/agentstation/regionmap/pkg/dataset"
)

// NewCommand creates the profile command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:     "profile",
		GroupID: "management",
		Short:   "Print the dataset profile in use",
		Long: `Profile prints the resolved dataset profile: atlas metadata, source URLs
and hashes, id bands, reserved ids, side markers, palette and filler
acronyms. The YAML output can be edited and passed back with --profile-file.`,
		Example: `  regionmap profile                        # Profile as YAML
  regionmap profile --names                # Embedded profile names
  regionmap profile > mine.yaml && regionmap build --profile-file mine.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if names {
				for _, name := range dataset.Names() {
					if _, err := fmt.Fprintln(w, name); err != nil {
						return err
					}
				}
				return nil
			}

			client, err := app.Client()
			if err != nil {
				return err
			}
			p := client.Profile()

			if output.Format(app.OutputFormat()) == output.FormatJSON {
				return output.FormatAny(w, p, output.FormatJSON)
			}
			data, err := p.YAML()
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, "list the embedded profile names")

	return cmd
}
