package formula

import (
	"fmt"
	"runtime"
)

/**
 * Detect the canonical platform identifier of the host
 * @returns {string} Returns "<os>-<arch>" (e.g. "linux-x64", "darwin-arm64", "win32-x64")
 * @description
 * - OS and architecture come from runtime.GOOS / runtime.GOARCH
 * - Names follow the identifiers used by formula platform entries:
 *   windows maps to "win32", amd64 to "x64", 386 to "ia32"
 */
func DetectPlatform() string {
	osName := runtime.GOOS
	if osName == "windows" {
		osName = "win32"
	}
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x64"
	case "386":
		arch = "ia32"
	}
	return fmt.Sprintf("%s-%s", osName, arch)
}
