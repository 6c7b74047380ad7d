package models

import "time"

/**
 * Process detail for status display
 */
type ProcessDetail struct {
	Title          string    `json:"title"`
	Command        string    `json:"command"`
	Args           []string  `json:"args"`
	WorkDir        string    `json:"workDir,omitempty"`
	Pid            int       `json:"pid"`
	Status         RunStatus `json:"status"`
	StartTime      time.Time `json:"startTime"`
	LastExitTime   time.Time `json:"lastExitTime,omitempty"`
	LastExitReason string    `json:"lastExitReason,omitempty"`
}

/**
 * Service instance detail returned by the status API
 */
type ServiceDetail struct {
	Name      string         `json:"name"`
	Formula   string         `json:"formula"`
	Version   string         `json:"version"`
	Platform  string         `json:"platform"`
	Pid       int            `json:"pid"`
	Port      int            `json:"port"`
	State     InstallState   `json:"state"`
	StartTime string         `json:"startTime,omitempty"`
	Paths     ResolvedPaths  `json:"paths"`
	Process   *ProcessDetail `json:"process,omitempty"`
}

/**
 * Error body returned by the HTTP API
 */
type ErrorResponse struct {
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

/**
 * Health probe response
 */
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	StartTime string `json:"startTime"`
	Services  int    `json:"services"`
}

/**
 * Persisted instance record (cache/services/<name>.json), used by the CLI
 * to find instances started by an earlier invocation
 */
type InstanceRecord struct {
	Name      string `json:"name"`
	Formula   string `json:"formula"`
	Version   string `json:"version"`
	Platform  string `json:"platform"`
	Pid       int    `json:"pid"`
	Port      int    `json:"port"`
	ExecFile  string `json:"execFile"`
	LogFile   string `json:"logFile"`
	StartTime string `json:"startTime"`
}
