package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/pipup/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run:   runVersion,
}

// Note: versionCmd is added to rootCmd in root.go's init() to control command order

// runVersion executes the version command to display build and version information.
//
// Outputs the build target platform, runtime platform (if different), Go version,
// build date, git commit hash, and semantic version to stdout.
func runVersion(cmd *cobra.Command, args []string) {
	printVersionOutput()
}

// printVersionOutput prints version, build, and runtime information to stdout.
//
// Output includes build target platform, runtime platform (if different),
// Go version, build date, git commit, and version string.
func printVersionOutput() {
	buildOS, buildArch := getBuildTarget()
	fmt.Printf("  Build:   %s/%s\n", buildOS, buildArch)

	// Show runtime (what user is running on) only if different
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Printf("  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}

	fmt.Printf("  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Printf("  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Printf("  Git:     %s\n", GitCommit)
	}
	fmt.Printf("  Version: %s\n", Version)
}

// GetVersion returns the current version string.
//
// Returns the semantic version set at build time, or "dev" for development builds.
//
// Returns:
//   - string: Version string (e.g., "1.0.0", "dev")
func GetVersion() string {
	return Version
}

// getBuildTarget returns the OS and architecture the binary was built for.
//
// Falls back to runtime values if build-time values weren't set (dev builds).
//
// Returns:
//   - string: Target operating system (e.g., "linux", "darwin", "windows")
//   - string: Target architecture (e.g., "amd64", "arm64")
func getBuildTarget() (string, string) {
	buildOS := BuildOS
	buildArch := BuildArch

	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}

	return buildOS, buildArch
}
