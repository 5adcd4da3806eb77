package model

// DefaultProject is the key used when no workspace folder is open.
const DefaultProject ProjectKey = "default"

// File names inside the data directory.
const (
	SnapshotFileName = "project_times.json"
	ReportDirName    = "reports"
	ReportExtension  = ".txt"
	LockFileName     = ".lock"
)

// ProjectKey identifies a tracked workspace, usually its root path.
type ProjectKey string

func (k ProjectKey) String() string {
	return string(k)
}

// KeyOrDefault maps an empty workspace path to DefaultProject.
func KeyOrDefault(path string) ProjectKey {
	if path == "" {
		return DefaultProject
	}
	return ProjectKey(path)
}
