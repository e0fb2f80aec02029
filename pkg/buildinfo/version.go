// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/tikzdoc/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/tikzdoc/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/tikzdoc/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/tikzdoc
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"     // semantic version, e.g. "v1.2.3"
	Commit  = "none"    // git commit SHA
	Date    = "unknown" // build timestamp
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
