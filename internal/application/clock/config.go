package clock

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/penwyp/go-project-clock/internal/core/model"
)

// Defaults applied by Validate.
const (
	DefaultDataDir      = "~/.go-project-clock/data"
	DefaultIcon         = "$(clock)"
	DefaultTimezone     = "Local"
	DefaultTickInterval = time.Second
)

// Config contains configuration for the tracking loop.
type Config struct {
	// Storage
	DataDir   string
	ReportDir string

	// Project tracked at activation
	Project model.ProjectKey

	// Display
	Icon     string
	Timezone string

	// Refresh cadence of the display text
	TickInterval time.Duration
}

// Validate fills defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.ReportDir == "" {
		c.ReportDir = filepath.Join(c.DataDir, model.ReportDirName)
	}
	if c.Project == "" {
		c.Project = model.DefaultProject
	}
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick interval must not be negative, got %s", c.TickInterval)
	}
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	return nil
}
