package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
)

/**
 * Ensure the extraction directory and target executable exist
 * @param {*models.Formula} f - Formula the archive belongs to (for diagnostics)
 * @param {models.ResolvedPaths} p - Planned layout; p.SourceFile is unpacked into p.ExtractDir
 * @returns {error} Returns nil once p.ExecFile exists and is executable
 * @description
 * - Skips entirely when both p.ExtractDir and p.ExecFile already exist, so a
 *   partially-extracted-but-interrupted directory is simply re-extracted from
 *   the cached archive without re-downloading
 * - Exactly one leading directory level is stripped from every entry,
 *   normalizing archives that wrap their contents in a version-named folder
 * - Format is chosen by the artifact extension: gzip-compressed tar for
 *   .tgz/.tar.gz, zip for .zip
 * @throws
 * - ExtractionError on corrupt or unrecognized archives, entries escaping the
 *   extraction root, or a missing declared executable
 * - FilesystemError when the extraction directory cannot be created
 */
func Ensure(f *models.Formula, p models.ResolvedPaths) error {
	_, dirErr := os.Stat(p.ExtractDir)
	_, execErr := os.Stat(p.ExecFile)
	if dirErr == nil && execErr == nil {
		logger.Debugf("Executable '%s' already extracted, skipping", p.ExecFile)
		return nil
	}

	if err := os.MkdirAll(p.ExtractDir, 0755); err != nil {
		return &models.FilesystemError{Op: "mkdir", Path: p.ExtractDir, Err: err}
	}
	logger.Infof("Extracting '%s' into %s", p.SourceFile, p.ExtractDir)

	var err error
	switch {
	case strings.HasSuffix(p.SourceFile, ".tgz"), strings.HasSuffix(p.SourceFile, ".tar.gz"):
		err = extractTarGz(p.SourceFile, p.ExtractDir)
	case strings.HasSuffix(p.SourceFile, ".zip"):
		err = extractZip(p.SourceFile, p.ExtractDir)
	default:
		err = fmt.Errorf("unrecognized archive format '%s'", filepath.Ext(p.SourceFile))
	}
	if err != nil {
		return &models.ExtractionError{Formula: f.Name, Archive: p.SourceFile, Err: err}
	}

	if _, err := os.Stat(p.ExecFile); err != nil {
		return &models.ExtractionError{
			Formula: f.Name,
			Archive: p.SourceFile,
			Err:     fmt.Errorf("archive does not contain declared executable '%s'", f.Exec),
		}
	}
	if err := os.Chmod(p.ExecFile, 0755); err != nil {
		return &models.FilesystemError{Op: "chmod", Path: p.ExecFile, Err: err}
	}
	return nil
}

/**
 * Strip one leading path element from an archive entry name
 * @param {string} name - Entry name as recorded in the archive
 * @returns {(string, bool, error)} Returns the stripped relative path, whether
 * the entry survives stripping, and an error for entries that would escape
 * @description
 * - "mongodb-7.0.14/bin/mongod" becomes "bin/mongod"
 * - The wrapper directory itself ("mongodb-7.0.14/") strips to nothing and is skipped
 * - Absolute names and ".." components are rejected
 */
func stripLeading(name string) (string, bool, error) {
	clean := filepath.ToSlash(name)
	clean = strings.TrimPrefix(clean, "./")
	if clean == "" {
		return "", false, nil
	}
	if strings.HasPrefix(clean, "/") {
		return "", false, fmt.Errorf("absolute entry name '%s'", name)
	}
	for _, part := range strings.Split(clean, "/") {
		if part == ".." {
			return "", false, fmt.Errorf("entry '%s' escapes extraction root", name)
		}
	}
	idx := strings.Index(clean, "/")
	if idx < 0 {
		// Entry at the stripped level: the wrapper dir itself.
		return "", false, nil
	}
	rest := strings.Trim(clean[idx+1:], "/")
	if rest == "" {
		return "", false, nil
	}
	return rest, true, nil
}

func extractTarGz(archivePath, destDir string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("bad gzip stream: %v", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("bad tar stream: %v", err)
		}
		rel, keep, err := stripLeading(hdr.Name)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			os.Remove(target)
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return err
			}
		}
	}
}

func extractZip(archivePath, destDir string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("bad zip archive: %v", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		rel, keep, err := stripLeading(entry.Name)
		if err != nil {
			return err
		}
		if !keep {
			continue
		}
		target := filepath.Join(destDir, filepath.FromSlash(rel))

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, entry.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	_, err = io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}
