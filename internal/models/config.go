package models

/**
 * Fully-specified launch configuration produced by the resolver
 * @property {string} name - Logical instance name (distinct instances get distinct data/log trees)
 * @property {PlatformSpec} platform - Selected platform entry; always a member of the formula's platform list
 * @property {string} baseDir - Root directory of the data/logs/source layout
 * @property {int} port - Listen port passed to the target process via the {port} placeholder
 * @property {[]string} extraArgs - Caller-supplied arguments appended after the template arguments
 */
type ResolvedConfig struct {
	Name      string       `json:"name"`
	Platform  PlatformSpec `json:"platform"`
	BaseDir   string       `json:"baseDir"`
	Port      int          `json:"port"`
	ExtraArgs []string     `json:"extraArgs,omitempty"`
}

/**
 * Deterministic filesystem layout derived from a resolved configuration
 * @property {string} dataDir - Working data directory handed to the target process
 * @property {string} logsDir - Directory holding the instance log file
 * @property {string} logFile - Log sink, truncated and reopened on every start
 * @property {string} sourceDir - Directory holding the downloaded artifact
 * @property {string} sourceFile - The artifact archive itself
 * @property {string} extractDir - Directory the archive is unpacked into
 * @property {string} execFile - Target executable inside the unpacked tree
 */
type ResolvedPaths struct {
	DataDir    string `json:"dataDir"`
	LogsDir    string `json:"logsDir"`
	LogFile    string `json:"logFile"`
	SourceDir  string `json:"sourceDir"`
	SourceFile string `json:"sourceFile"`
	ExtractDir string `json:"extractDir"`
	ExecFile   string `json:"execFile"`
}
