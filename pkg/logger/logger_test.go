package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithComponentTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.WithComponent("Scheduler").Info("Job registered", "user_id", 42)

	out := buf.String()
	assert.Contains(t, out, `"component":"Scheduler"`)
	assert.Contains(t, out, `"user_id":42`)
	assert.Contains(t, out, "Job registered")
}

func TestProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Opts{Env: "production", Output: &buf})

	log.Debug("noise")
	assert.Empty(t, buf.String())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
