package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mongo-keeper/internal/logger"
	"mongo-keeper/internal/models"
)

/**
 * ProgressFunc receives transfer progress in percent (0-100). A value of -1
 * is reported while the total size is unknown. Purely observational; display
 * is the caller's concern.
 */
type ProgressFunc func(percent int)

type Acquirer struct {
	client *http.Client
}

func NewAcquirer() *Acquirer {
	return &Acquirer{
		client: &http.Client{
			// No overall timeout: artifacts are hundreds of MB on slow links.
			// Cancellation goes through the request context.
			Transport: http.DefaultTransport,
		},
	}
}

/**
 * Ensure the source archive exists at the planned path
 * @param {context.Context} ctx - Context for transfer cancellation
 * @param {*models.Formula} f - Formula the artifact belongs to (for diagnostics)
 * @param {models.ResolvedConfig} cfg - Resolved configuration carrying the platform entry
 * @param {models.ResolvedPaths} p - Planned layout; p.SourceFile is the target
 * @param {ProgressFunc} progress - Optional progress observer, may be nil
 * @returns {error} Returns nil once p.SourceFile exists and is complete
 * @description
 * - Cache hit: when p.SourceFile already exists no network call is made
 * - The transfer streams into a temporary file in the same directory and is
 *   renamed onto p.SourceFile only after io.Copy completes, so an interrupted
 *   download can never be mistaken for a cache hit
 * @throws
 * - FilesystemError when the source directory or temp file cannot be created
 * - AcquisitionError on request failure, non-200 status, or interrupted copy
 */
func (a *Acquirer) Ensure(ctx context.Context, f *models.Formula, cfg models.ResolvedConfig, p models.ResolvedPaths, progress ProgressFunc) error {
	if _, err := os.Stat(p.SourceFile); err == nil {
		logger.Debugf("Artifact '%s' already cached, skipping download", p.SourceFile)
		if progress != nil {
			progress(100)
		}
		return nil
	}

	if err := os.MkdirAll(p.SourceDir, 0755); err != nil {
		return &models.FilesystemError{Op: "mkdir", Path: p.SourceDir, Err: err}
	}

	url := cfg.Platform.SourceURL
	logger.Infof("Downloading '%s' %s (%s) from %s", f.Name, f.Version, cfg.Platform.Name, url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &models.AcquisitionError{Formula: f.Name, URL: url, Err: err}
	}
	rsp, err := a.client.Do(req)
	if err != nil {
		return &models.AcquisitionError{Formula: f.Name, URL: url, Err: err}
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return &models.AcquisitionError{
			Formula: f.Name,
			URL:     url,
			Err:     fmt.Errorf("unexpected status %d", rsp.StatusCode),
		}
	}

	tmp, err := os.CreateTemp(p.SourceDir, filepath.Base(p.SourceFile)+".download-*")
	if err != nil {
		return &models.FilesystemError{Op: "create", Path: p.SourceDir, Err: err}
	}
	tmpName := tmp.Name()

	writer := &progressWriter{
		total:    rsp.ContentLength,
		progress: progress,
	}
	_, err = io.Copy(io.MultiWriter(tmp, writer), rsp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return &models.AcquisitionError{Formula: f.Name, URL: url, Err: err}
	}

	// The artifact only counts as present once the completed file lands on
	// its final name.
	if err := os.Rename(tmpName, p.SourceFile); err != nil {
		os.Remove(tmpName)
		return &models.FilesystemError{Op: "rename", Path: p.SourceFile, Err: err}
	}
	if progress != nil {
		progress(100)
	}
	logger.Infof("Artifact '%s' saved to %s", f.Name, p.SourceFile)
	return nil
}

/**
 * progressWriter converts byte counts into percent updates, emitting only
 * when the integer percentage changes and at most a few times per second.
 */
type progressWriter struct {
	total       int64
	written     int64
	lastPercent int
	lastEmit    time.Time
	progress    ProgressFunc
}

func (w *progressWriter) Write(b []byte) (int, error) {
	n := len(b)
	w.written += int64(n)
	if w.progress == nil {
		return n, nil
	}
	if w.total <= 0 {
		if time.Since(w.lastEmit) >= 200*time.Millisecond {
			w.lastEmit = time.Now()
			w.progress(-1)
		}
		return n, nil
	}
	percent := int(w.written * 100 / w.total)
	if percent > 100 {
		percent = 100
	}
	if percent != w.lastPercent {
		w.lastPercent = percent
		w.progress(percent)
	}
	return n, nil
}
