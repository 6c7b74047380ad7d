package models

/**
 * Platform entry of a formula
 * @property {string} name - Platform identifier (e.g. "linux-x64", "darwin-arm64")
 * @property {string} source - Download URL of the artifact; its file extension implies the archive format
 */
type PlatformSpec struct {
	Name      string `mapstructure:"name" json:"name"`
	SourceURL string `mapstructure:"source" json:"source"`
}

/**
 * Formula describing how to obtain and invoke an external service
 * @property {string} name - Formula name (e.g. "mongodb")
 * @property {string} version - Service version the artifacts belong to
 * @property {string} exec - Executable path relative to the unpacked archive root
 * @property {string} execArgs - Argument template containing {port} and {data} placeholders
 * @property {int} port - Default listen port used when neither option nor environment sets one
 * @property {[]PlatformSpec} platforms - Ordered list of platform-specific download sources
 */
type Formula struct {
	Name      string         `mapstructure:"name" json:"name"`
	Version   string         `mapstructure:"version" json:"version"`
	Exec      string         `mapstructure:"exec" json:"exec"`
	ExecArgs  string         `mapstructure:"execArgs" json:"execArgs"`
	Port      int            `mapstructure:"port" json:"port"`
	Platforms []PlatformSpec `mapstructure:"platforms" json:"platforms"`
}

/**
 * Find the platform entry with the given name
 * @param {string} name - Platform identifier to look for
 * @returns {(PlatformSpec, bool)} Returns the matching entry and true, or a zero entry and false
 * @description
 * - Scans the ordered platform list and returns the first match
 * - The caller decides how to report a miss (see UnsupportedPlatformError)
 */
func (f *Formula) Platform(name string) (PlatformSpec, bool) {
	for _, p := range f.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return PlatformSpec{}, false
}
