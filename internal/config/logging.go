package config

import (
	"fmt"
	"io"
	"log"
	"os"
)

// SetupLogging points the standard logger at the configured output. The
// returned closer releases a log file when one was opened.
func SetupLogging(cfg LoggingConfig) (io.Closer, error) {
	flags := log.LstdFlags
	if cfg.Level == "debug" {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
	log.SetPrefix("[skillnaav] ")

	switch cfg.OutputPath {
	case "", "stdout":
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil), nil
	case "stderr":
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}
