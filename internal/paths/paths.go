package paths

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"mongo-keeper/internal/models"
)

/**
 * Derive the deterministic filesystem layout for a resolved configuration
 * @param {*models.Formula} f - Formula the instance is built from
 * @param {models.ResolvedConfig} cfg - Fully-resolved launch configuration
 * @returns {models.ResolvedPaths} Returns the planned layout
 * @description
 * - Pure function: identical inputs always yield identical paths, so repeated
 *   invocations reuse the same artifact and extraction cache
 * - Layout rooted at cfg.BaseDir:
 *     data/<name>/<formula>
 *     logs/<name>/<formula>/logs.txt
 *     source/<formula>/<version>/<platform>/<formula>-<version>-<platform>.<ext>
 *     source/<formula>/<version>/<platform>/unpacked/<exec>
 */
func Plan(f *models.Formula, cfg models.ResolvedConfig) models.ResolvedPaths {
	dataDir := filepath.Join(cfg.BaseDir, "data", cfg.Name, f.Name)
	logsDir := filepath.Join(cfg.BaseDir, "logs", cfg.Name, f.Name)
	sourceDir := filepath.Join(cfg.BaseDir, "source", f.Name, f.Version, cfg.Platform.Name)
	sourceFile := filepath.Join(sourceDir,
		fmt.Sprintf("%s-%s-%s.%s", f.Name, f.Version, cfg.Platform.Name, ArchiveExt(cfg.Platform.SourceURL)))
	extractDir := filepath.Join(sourceDir, "unpacked")

	return models.ResolvedPaths{
		DataDir:    dataDir,
		LogsDir:    logsDir,
		LogFile:    filepath.Join(logsDir, "logs.txt"),
		SourceDir:  sourceDir,
		SourceFile: sourceFile,
		ExtractDir: extractDir,
		ExecFile:   filepath.Join(extractDir, filepath.FromSlash(f.Exec)),
	}
}

/**
 * Archive extension implied by a source URL
 * @param {string} sourceURL - Artifact download URL
 * @returns {string} Returns the extension without the leading dot ("tgz", "tar.gz", "zip")
 * @description
 * - "tar.gz" is kept as a compound extension so the extractor can tell the
 *   compression and container formats apart
 * - Query strings and fragments are ignored
 */
func ArchiveExt(sourceURL string) string {
	base := path.Base(sourceURL)
	if u, err := url.Parse(sourceURL); err == nil && u.Path != "" {
		base = path.Base(u.Path)
	}
	if strings.HasSuffix(base, ".tar.gz") {
		return "tar.gz"
	}
	return strings.TrimPrefix(path.Ext(base), ".")
}
