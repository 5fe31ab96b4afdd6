// Package version carries build-time version information.
package version

// Current is the running build's version string. Release builds override it
// via -ldflags "-X vetiver/internal/shared/version.Current=v1.2.3".
var Current = "dev"
