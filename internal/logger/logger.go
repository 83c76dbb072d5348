// Package logger configures the standard logger for the command-line tools.
package logger

import (
	"fmt"
	"log"
	"os"
)

// Flags are the standard logger flags used by every binary in this module.
const Flags = log.Ldate | log.Ltime | log.Lshortfile

// Init sets up the global logger to write to the specified file path.
// It returns the log file, which the caller is responsible for closing.
func Init(logFilePath string) (*os.File, error) {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(logFile)
	log.SetFlags(Flags | log.Lmicroseconds)
	return logFile, nil
}

// Stderr points the global logger at stderr. Stdout stays free for program
// output (or the MCP protocol).
func Stderr() {
	log.SetOutput(os.Stderr)
	log.SetFlags(Flags)
}

// DebugEnabled reports whether the environment variable name is set to
// "debug".
func DebugEnabled(name string) bool {
	return os.Getenv(name) == "debug"
}
