package version

import "fmt"

// Set at build time with -ldflags "-X github.com/netspec/prtg-reporter/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// UserAgent is sent on every outbound API request
func UserAgent() string {
	return "prtg-reporter/" + Version
}

// String returns a one-line summary for the version command
func String() string {
	if Version == "dev" {
		return fmt.Sprintf("prtg-reporter dev (commit: %s)", Commit)
	}
	return fmt.Sprintf("prtg-reporter %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
