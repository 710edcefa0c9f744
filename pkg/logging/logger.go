// Package logging provides structured logging for regionmap using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise.
//
// Every synthesis run tags its events with the dataset and the pipeline
// stage that emitted them:
//
//	ctx = logging.WithDataset(ctx, "columbia_cuttlefish")
//	ctx = logging.WithStage(ctx, logging.StageReconcile)
//	logging.FromContext(ctx).Debug().Int("matched", 41).Msg("Labels reconciled")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agentstation/regionmap/pkg/regions"
)

// Environment variables read by the default logger. The prefixed names win.
const (
	EnvLogLevel  = "REGIONMAP_LOG_LEVEL"
	EnvLogFormat = "REGIONMAP_LOG_FORMAT"
)

// Stage names a step of the synthesis pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageFetch     Stage = "fetch"
	StageExpand    Stage = "expand"
	StageNormalize Stage = "normalize"
	StageReconcile Stage = "reconcile"
	StageFill      Stage = "fill"
	StageValidate  Stage = "validate"
	StagePackage   Stage = "package"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = createDefaultLogger()
}

func createDefaultLogger() zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = lookupEnv(EnvLogLevel, "LOG_LEVEL")
	if cfg.Level == "" && os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := lookupEnv(EnvLogFormat, "LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	return NewLoggerFromConfig(cfg)
}

// lookupEnv returns the first non-empty variable among names.
func lookupEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// RegionDict describes a region as a nested log object.
func RegionDict(r *regions.Region) *zerolog.Event {
	d := zerolog.Dict().
		Str("name", r.Name).
		Int("id", r.ID).
		Stringer("id_source", r.IDSource)
	if r.Acronym != "" {
		d = d.Str("acronym", r.Acronym)
	}
	if len(r.StructureIDPath) > 0 {
		d = d.Ints("path", r.StructureIDPath)
	}
	if r.Side != regions.SideNone {
		d = d.Stringer("side", r.Side)
	}
	if r.Line > 0 {
		d = d.Int("line", r.Line)
	}
	return d
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
