package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAlreadyRunning means another tracker holds the data directory.
var ErrAlreadyRunning = errors.New("another tracker is already using this data directory")

// InstanceLock is an exclusive lock on a file inside the data directory.
type InstanceLock struct {
	file *os.File
	path string
}

// AcquireLock takes the lock file at path, creating its directory. It returns
// ErrAlreadyRunning when another process holds it.
func AcquireLock(path string) (*InstanceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		return nil, err
	}

	if err := file.Truncate(0); err == nil {
		fmt.Fprintf(file, "%d\n", os.Getpid())
	}
	return &InstanceLock{file: file, path: path}, nil
}

// Release unlocks and closes the lock file. The file itself is left in place.
func (l *InstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlockFile(l.file)
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return unlockErr
	}
	return closeErr
}

func (l *InstanceLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}
