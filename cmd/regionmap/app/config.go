package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/regionmap/pkg/constants"
	"github.com/agentstation/regionmap/pkg/errors"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "REGIONMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Dataset and inputs
	Dataset        string
	ProfileFile    string
	HierarchyFile  string
	AnnotationFile string
	CacheDir       string
	OutputDir      string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL or the config file and ranks below
	// --verbose and --quiet.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (REGIONMAP_*, LOG_*)
// 3. .env files
// 4. Config file (REGIONMAP_CONFIG, or ~/.regionmap.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()
	return loadConfig(os.Getenv(EnvPrefix + "_CONFIG"))
}

func loadConfig(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"log_level", "log_format", "log_output"} {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(key), strings.ToUpper(key)); err != nil {
			return nil, errors.NewConfigError("env", "binding "+key, err)
		}
	}

	v.SetDefault("dataset", constants.DefaultDataset)
	v.SetDefault("cache_dir", defaultCacheDir())
	v.SetDefault("output_dir", constants.DefaultOutputDir)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".regionmap")

		// A missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config file", "reading "+v.ConfigFileUsed(), err)
			}
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Dataset:        v.GetString("dataset"),
		ProfileFile:    v.GetString("profile_file"),
		HierarchyFile:  v.GetString("hierarchy_file"),
		AnnotationFile: v.GetString("annotation_file"),
		CacheDir:       expandHome(v.GetString("cache_dir")),
		OutputDir:      expandHome(v.GetString("output_dir")),

		EnvLogLevel: v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),
		LogOutput:   v.GetString("log_output"),
	}, nil
}

// Flags carries the values of the persistent flags that were set on the
// command line.
type Flags struct {
	Verbose        *bool
	Quiet          *bool
	NoColor        *bool
	Format         *string
	LogLevel       *string
	Dataset        *string
	ProfileFile    *string
	HierarchyFile  *string
	AnnotationFile *string
	CacheDir       *string
}

// UpdateFromFlags overrides config values with flags given on the command
// line. Nil fields were not set and leave the config untouched.
func (c *Config) UpdateFromFlags(f Flags) {
	setBool(&c.Verbose, f.Verbose)
	setBool(&c.Quiet, f.Quiet)
	setBool(&c.NoColor, f.NoColor)
	setString(&c.Format, f.Format)
	setString(&c.LogLevel, f.LogLevel)
	setString(&c.Dataset, f.Dataset)
	setString(&c.ProfileFile, f.ProfileFile)
	setString(&c.HierarchyFile, f.HierarchyFile)
	setString(&c.AnnotationFile, f.AnnotationFile)
	if f.CacheDir != nil {
		c.CacheDir = expandHome(*f.CacheDir)
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return constants.DefaultCacheDir
	}
	return filepath.Join(home, constants.DefaultCacheDir)
}

// expandHome resolves a leading ~/ against the home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
