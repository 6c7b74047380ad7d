package models

import "fmt"

/**
 * Raised by the config resolver when the selected platform name has no entry
 * in the formula's platform list. Reported before any filesystem or network
 * operation is attempted.
 */
type UnsupportedPlatformError struct {
	Formula  string
	Platform string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("formula '%s' has no platform entry '%s'", e.Formula, e.Platform)
}

/**
 * Directory/file creation or deletion failure anywhere in the sequence
 */
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s '%s' failed: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

/**
 * Network transfer failure or interruption while fetching an artifact.
 * A failed transfer never leaves a complete-looking file behind.
 */
type AcquisitionError struct {
	Formula string
	URL     string
	Err     error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("formula '%s': download of '%s' failed: %v", e.Formula, e.URL, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

/**
 * Archive corrupt, unsupported, or missing the declared executable
 */
type ExtractionError struct {
	Formula string
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("formula '%s': extraction of '%s' failed: %v", e.Formula, e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

/**
 * Spawn failure (missing executable, permission denied). Never retried.
 */
type LaunchError struct {
	Formula string
	Exec    string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("formula '%s': spawn of '%s' failed: %v", e.Formula, e.Exec, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }
