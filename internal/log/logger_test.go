package log

import (
	"testing"

	"staffhub/config"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zapcore.Level
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "warn", level: "warn", want: zapcore.WarnLevel},
		{name: "invalid falls back to info", level: "verbose", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &config.Configuration{}
			conf.Log.Level = tt.level
			if _, err := NewLogger(conf); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if atomic.Level() != tt.want {
				t.Fatalf("level = %s, want %s", atomic.Level(), tt.want)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	if err := SetLevel("error"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.Level() != zapcore.ErrorLevel {
		t.Fatalf("level not applied")
	}
	if err := SetLevel("loud"); err == nil {
		t.Fatalf("expected parse error")
	}
}
