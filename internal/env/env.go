package env

import (
	"os"
	"path/filepath"
)

const Version = "0.9.2"

var Daemon bool = false
var ListenPort int = 0

/**
 * Default base directory for instance data when neither the dir option nor
 * MONGO_DIR is set (a mongo-keeper subdirectory of the system temp dir)
 * @returns {string} Returns the fallback base directory path
 */
func DefaultBaseDir() string {
	return filepath.Join(os.TempDir(), "mongo-keeper")
}

/**
 * Directory for keeper-internal files (app config, instance cache)
 * @returns {string} Returns $HOME/.mongo-keeper, or a temp fallback when the
 * home directory cannot be determined
 */
func KeeperDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultBaseDir()
	}
	return filepath.Join(homeDir, ".mongo-keeper")
}
