package logging

import (
	"io"
	"log"
	"os"
	"sync/atomic"

	"SHT20Monitor.influxDB/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var debug atomic.Bool

// Setup points the standard logger at stderr and, when a log file is
// configured, at a rotating file as well. The returned closer releases the file.
func Setup(cfg config.LogConfig) io.Closer {
	debug.Store(cfg.Debug)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if cfg.File == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	log.Printf("Logging to %s (max %d MB, %d backups)", cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
	return rotator
}

// SetDebug toggles debug output.
func SetDebug(enabled bool) {
	debug.Store(enabled)
}

// Debugf logs only when debug output is enabled.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("DEBUG: "+format, args...)
	}
}
