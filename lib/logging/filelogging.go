package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger logs to STDOUT, or to a dated file next to logFilePath when it is set.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.INFO),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath, time.Now())
		if err != nil {
			logger.Errorf("failed to open logging file, logging to STDOUT: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile opens (appending) the log file for the day of now,
// e.g. /var/log/royaltyhub.log becomes /var/log/royaltyhub-2024-03-18.log.
func GetLoggingFile(path string, now time.Time) (*os.File, error) {
	extension := filepath.Ext(path)
	suffix := now.Format("-2006-01-02")
	if extension != "" {
		path = strings.TrimSuffix(path, extension) + suffix + extension
	} else {
		path = path + suffix + ".log"
	}

	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
