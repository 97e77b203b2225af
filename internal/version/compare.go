package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConfigCompatibility checks whether a config file written for fileVersion
// can be loaded by a binary supporting supportedVersion.
//
// Rules:
//   - An empty fileVersion is accepted (config files may omit the field)
//   - Major versions must match exactly
//   - The file's minor version must not be newer than the supported one,
//     since newer minors may carry keys this build silently ignores
//   - Patch versions can differ
//
// Examples:
//   - File 1.1.0, Supported 1.1.0 -> OK
//   - File 1.0.3, Supported 1.1.0 -> OK (older minor)
//   - File 1.2.0, Supported 1.1.0 -> ERROR (newer minor)
//   - File 2.0.0, Supported 1.1.0 -> ERROR (major differs)
func CheckConfigCompatibility(fileVersion, supportedVersion string) error {
	fileVersion = strings.TrimPrefix(strings.TrimSpace(fileVersion), "v")
	supportedVersion = strings.TrimPrefix(supportedVersion, "v")

	if fileVersion == "" {
		return nil
	}

	fileSemver, err := semver.NewVersion(fileVersion)
	if err != nil {
		return fmt.Errorf("invalid config version '%s': %w", fileVersion, err)
	}

	supportedSemver, err := semver.NewVersion(supportedVersion)
	if err != nil {
		return fmt.Errorf("invalid supported version '%s': %w", supportedVersion, err)
	}

	if fileSemver.Major() != supportedSemver.Major() {
		return fmt.Errorf("major version mismatch: config is %d.x.x but this build reads %d.x.x",
			fileSemver.Major(), supportedSemver.Major())
	}

	if fileSemver.Minor() > supportedSemver.Minor() {
		return fmt.Errorf("config version %s is newer than supported %s", fileSemver, supportedSemver)
	}

	return nil
}
