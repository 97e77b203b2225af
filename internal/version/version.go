package version

// Version is the current version of fxgold.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/fxgold/internal/version.Version=1.2.3"
// The value "main" indicates a development build.
var Version = "v0.4.1"

// ConfigVersion is the config file schema version this build understands.
const ConfigVersion = "1.1.0"

// GetVersion returns the current version of the binary.
func GetVersion() string {
	return Version
}
