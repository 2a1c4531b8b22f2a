package server

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging sends log output to dir/app.log, and to stdout as well unless
// toStdout is false. The caller closes the returned file.
func SetupLogging(dir string, toStdout bool) (*os.File, error) {
	// Create logs directory if it doesn't exist
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	logFileName := filepath.Join(dir, "app.log")
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	if toStdout {
		mw := io.MultiWriter(os.Stdout, logFile)
		log.SetOutput(mw)
	} else {
		log.SetOutput(logFile)
	}

	// Set log format to include timestamp
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return logFile, nil
}
