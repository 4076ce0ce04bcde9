package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"WARNING", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"nonsense", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "level %q", tt.in)
	}
}

func TestValidateFileOutput(t *testing.T) {
	c := &Conf{Output: "file"}
	err := c.Validate()
	require.Error(t, err)

	c.Path = t.TempDir()
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.RotateSize)
	assert.Equal(t, 10, c.RotateNum)
	assert.Equal(t, 7, c.KeepDays)
}

func TestInitStdout(t *testing.T) {
	conf := SetDefaults()
	conf.Level = "DEBUG"
	require.NoError(t, Init(conf))

	Debugw("debug message", "k", "v")
	Infow("info message", "k", "v")
	Errorf("error %s", "message")
}
