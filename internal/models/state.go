package models

/**
 * Install-and-launch lifecycle state of a service instance.
 * Failed and Stopped are terminal.
 */
type InstallState string

const (
	StateUnresolved       InstallState = "unresolved"
	StateConfigResolved   InstallState = "config-resolved"
	StatePathsPlanned     InstallState = "paths-planned"
	StateArtifactCached   InstallState = "artifact-cached"
	StateDownloading      InstallState = "downloading"
	StateDownloaded       InstallState = "downloaded"
	StateExtractionCached InstallState = "extraction-cached"
	StateExtracting       InstallState = "extracting"
	StateExtracted        InstallState = "extracted"
	StateLogPrepared      InstallState = "log-prepared"
	StateSpawning         InstallState = "spawning"
	StateRunning          InstallState = "running"
	StateStopping         InstallState = "stopping"
	StateStopped          InstallState = "stopped"
	StateFailed           InstallState = "failed"
)

/**
 * Run status of a supervised child process
 */
type RunStatus string

const (
	StatusRunning RunStatus = "running"
	StatusExited  RunStatus = "exited"
	StatusStopped RunStatus = "stopped"
	StatusError   RunStatus = "error"
)
