package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	loggerMu     sync.RWMutex
)

// InitLogger installs the process-wide logger. A later call replaces the
// previous logger and closes it.
func InitLogger(logLevel, logFile, logFormat string, debugToConsole bool) error {
	logger, err := NewLogger(logLevel, logFile, logFormat, debugToConsole)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger swaps the global logger. Passing nil disables logging.
func SetLogger(logger LoggerInterface) {
	loggerMu.Lock()
	previous := globalLogger
	globalLogger = logger
	loggerMu.Unlock()

	if previous != nil && previous != logger {
		_ = previous.Close()
	}
}

// AttachFields decorates the global logger with fields carried by every
// subsequent entry.
func AttachFields(fields ...Field) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if globalLogger != nil {
		globalLogger = globalLogger.With(fields...)
	}
}

// GetLogger returns the global logger, or nil when logging is not set up.
func GetLogger() LoggerInterface {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return globalLogger
}

func LogInfo(msg string) {
	if logger := GetLogger(); logger != nil {
		logger.Info(msg)
	}
}

func LogInfof(format string, args ...interface{}) {
	if logger := GetLogger(); logger != nil {
		logger.Infof(format, args...)
	}
}

func LogDebug(msg string) {
	if logger := GetLogger(); logger != nil {
		logger.Debug(msg)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if logger := GetLogger(); logger != nil {
		logger.Debugf(format, args...)
	}
}

func LogWarn(msg string) {
	if logger := GetLogger(); logger != nil {
		logger.Warn(msg)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if logger := GetLogger(); logger != nil {
		logger.Warnf(format, args...)
	}
}

func LogError(msg string) {
	if logger := GetLogger(); logger != nil {
		logger.Error(msg)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if logger := GetLogger(); logger != nil {
		logger.Errorf(format, args...)
	}
}
