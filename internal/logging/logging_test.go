package logging

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"SHT20Monitor.influxDB/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugfRespectsToggle(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		SetDebug(false)
	})

	SetDebug(false)
	Debugf("dropped row %d", 1)
	assert.Empty(t, buf.String())

	SetDebug(true)
	Debugf("dropped row %d", 2)
	assert.Contains(t, buf.String(), "DEBUG: dropped row 2")
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.log")
	closer := Setup(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		SetDebug(false)
	})

	log.Println("poll cycle complete")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "poll cycle complete")
}
