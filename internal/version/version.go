// Package version carries the build version, set at link time with
// -ldflags "-X trscan/internal/version.Version=v1.2.3".
package version

// Version is the release string reported by --version.
var Version = "dev"
