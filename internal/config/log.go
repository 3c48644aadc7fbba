package config

import (
	"fmt"
	"io"
	"log"
	"os"
)

// SetupLogging configures the standard logger and tees it into the log file.
// The returned closer flushes and closes the file; it is never nil.
func SetupLogging(p Paths, console bool) (io.Closer, error) {
	log.SetPrefix("[edgeshelf] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := p.EnsureLogsDir(); err != nil {
		return io.NopCloser(nil), fmt.Errorf("failed to ensure logs dir: %w", err)
	}

	// Append: a second instance forwarding a command to the running one
	// logs through the same file.
	f, err := os.OpenFile(p.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.NopCloser(nil), fmt.Errorf("failed to open log file: %w", err)
	}

	if console {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		log.SetOutput(f)
	}
	return f, nil
}
