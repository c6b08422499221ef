// Package version provides build-time version information.
package version

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// ProblemSchemaVersion is the on-disk format version problemio stamps into
// every problem and solution JSON document it writes. It tracks the shape
// of padDoc/connectionDoc/netDoc/problemDoc/solutionDoc, not the binary's
// own release version above, and only needs bumping when that shape
// changes incompatibly.
const ProblemSchemaVersion = 1
