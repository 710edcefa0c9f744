// Package constants provides shared constants used throughout the regionmap
// codebase: timeouts, file permissions, hierarchy limits and output names.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the timeout for a single source download
	DefaultHTTPTimeout = 5 * time.Minute

	// ConnectivityTimeout bounds the reachability probe made before downloads
	ConnectivityTimeout = 5 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Hierarchy limits
const (
	// MaxDepth is the deepest structure_id_path supported, root included
	MaxDepth = 4

	// IndexSeparator splits the ancestry index column of the hierarchy table
	IndexSeparator = "-"
)

// Output file names handed to the packaging collaborator
const (
	// StructuresFile holds the ordered region list
	StructuresFile = "structures.json"

	// MetadataFile holds the atlas descriptor
	MetadataFile = "metadata.json"
)

// Path constants
const (
	// DefaultCacheDir is the default download cache, relative to the home directory
	DefaultCacheDir = ".regionmap/downloads"

	// DefaultOutputDir is the default build output directory
	DefaultOutputDir = "regionmap-out"

	// DefaultDataset is the embedded profile used when none is configured
	DefaultDataset = "columbia_cuttlefish"
)
