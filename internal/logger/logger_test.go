package logger

import (
	"bytes"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{name: "logs when debug env is set", envValue: "1", expectLog: true},
		{name: "logs for any value", envValue: "true", expectLog: true},
		{name: "silent when unset", envValue: "", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			l := NewEnvLogger("[test]")
			l.Debug("stat %s went missing", "WarpRate")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] stat WarpRate went missing")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)

	l := NewEnvLogger("[sampler]")
	l.Info("sampled %d panels", 4)
	l.Warn("slow tick")
	l.Error("surface stopped")

	out := buf.String()
	assert.Contains(t, out, "[sampler] sampled 4 panels")
	assert.Contains(t, out, "[sampler] WARN: slow tick")
	assert.Contains(t, out, "[sampler] ERROR: surface stopped")
}

func TestEnvLogger_NoPrefix(t *testing.T) {
	buf := captureLog(t)

	l := NewEnvLogger("")
	l.Info("plain")
	l.Warn("careful")

	assert.Equal(t, "plain\nWARN: careful\n", buf.String())
}

func TestNoopLogger(t *testing.T) {
	buf := captureLog(t)

	l := Noop()
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info %s", "msg")
	l.Warn("warn %s", "msg")
	l.Error("error %s", "msg")

	msgs := l.Snapshot()
	require.Len(t, msgs, 4)
	assert.Equal(t, LogMessage{Level: "debug", Message: "debug msg"}, msgs[0])
	assert.Equal(t, LogMessage{Level: "error", Message: "error msg"}, msgs[3])

	assert.True(t, l.HasLevel("warn"))
	assert.Equal(t, 1, l.Count("info"))

	l.Clear()
	assert.Empty(t, l.Snapshot())
	assert.False(t, l.HasLevel("warn"))
}

func TestBufferLogger_Concurrent(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Info("worker %d", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, l.Count("info"))
}

func TestLoggerInterface(t *testing.T) {
	var _ Logger = NewEnvLogger("")
	var _ Logger = Noop()
	var _ Logger = NewBufferLogger()
}
