// Package validate provides the command that checks the inputs synthesize
// into a consistent hierarchy.
package validate

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/regionmap"
	"github.com/agentstation/regionmap/internal/appcontext"
	"github.com/agentstation/regionmap/internal/cmd/output"
	"github.com/agentstation/regionmap/pkg/errors"
	"github.com/agentstation/regionmap/pkg/hierarchy"
)

// NewCommand creates the validate command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate",
		GroupID: "management",
		Short:   "Check that the inputs synthesize into a valid hierarchy",
		Long: `Validate runs the full synthesis with every output invariant checked and
prints what each stage did. Any violated invariant makes the command fail.

With --strict, rows out of parent-before-children order, rows with
malformed extra fields and catalogue labels no region uses also fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := app.ClientWithOptions(regionmap.WithValidation(true))
			if err != nil {
				return err
			}

			result, err := client.Synthesize(cmd.Context())
			if err != nil {
				return err
			}

			report(app.Logger(), result)
			if err := output.FormatStats(cmd.OutOrStdout(), result, output.DetectFormat(app.OutputFormat())); err != nil {
				return err
			}

			if strict {
				return Strict(result)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "also fail on order violations, stripped fields and unused labels")

	return cmd
}

// Strict reports the tolerated irregularities of a result as errors.
func Strict(result *hierarchy.Result) error {
	var errs []error
	for _, v := range result.OrderViolations {
		errs = append(errs, errors.NewValidationError("order", v.Region,
			fmt.Sprintf("%s follows %s but belongs under %s", v.Region, v.Positional, v.Structural)))
	}
	for _, s := range result.Stripped {
		errs = append(errs, errors.NewShapeError("hierarchy", s.Line, "", fmt.Sprintf("%s has malformed fields %v", s.Name, s.Fields)))
	}
	for _, acronym := range result.UnusedLabels {
		errs = append(errs, errors.NewValidationError("label", acronym, fmt.Sprintf("catalogue label %s is not used by any region", acronym)))
	}
	return errors.Join(errs...)
}

func report(logger *zerolog.Logger, result *hierarchy.Result) {
	for _, v := range result.OrderViolations {
		logger.Warn().
			Str("region", v.Region).
			Str("positional_parent", v.Positional).
			Str("structural_parent", v.Structural).
			Msg("Row is out of parent-before-children order")
	}
	if len(result.UnusedLabels) > 0 {
		logger.Warn().Strs("labels", result.UnusedLabels).Msg("Catalogue labels not used by any region")
	}
	logger.Info().Msg(result.Summary())
}
