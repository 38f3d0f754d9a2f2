// Package version exposes the build version stamped at link time.
package version

// version is overridden at build time via
//
//	-ldflags "-X github.com/metalpath/metalpath/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Link-time stamping requires a package variable.
var version = "dev"

// GetVersion returns the stamped build version.
func GetVersion() string {
	return version
}
