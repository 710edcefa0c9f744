package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the regionmap CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "regionmap",
		Short:   "Atlas region hierarchy builder",
		Version: a.version,
		Long: `Regionmap turns a curated brain hierarchy table and the segment labels of
an annotation volume into the ordered structure list an atlas package needs:
every region with a unique id, acronym, colour and root-to-region id path.

Inputs are downloaded and checksummed on first use, or read from local files
given with --hierarchy-file and --annotation-file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.regionmap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, wide, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("dataset", "", "embedded dataset profile to use")
	flags.String("profile-file", "", "dataset profile YAML file (overrides --dataset)")
	flags.String("hierarchy-file", "", "local hierarchy table instead of downloading it")
	flags.String("annotation-file", "", "local annotation volume instead of downloading it")
	flags.String("cache-dir", "", "download cache directory")

	rootCmd.SetVersionTemplate("regionmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand applies flags on top of the loaded configuration and rebuilds
// the logger before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := loadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(Flags{
		Verbose:        changedBool(cmd, "verbose"),
		Quiet:          changedBool(cmd, "quiet"),
		NoColor:        changedBool(cmd, "no-color"),
		Format:         changedString(cmd, "format"),
		LogLevel:       changedString(cmd, "log-level"),
		Dataset:        changedString(cmd, "dataset"),
		ProfileFile:    changedString(cmd, "profile-file"),
		HierarchyFile:  changedString(cmd, "hierarchy-file"),
		AnnotationFile: changedString(cmd, "annotation-file"),
		CacheDir:       changedString(cmd, "cache-dir"),
	})

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := mustGetBool(cmd, name)
	return &v
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := mustGetString(cmd, name)
	return &v
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
