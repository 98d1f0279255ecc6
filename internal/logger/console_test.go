package logger

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestConsoleWriterSelection(t *testing.T) {
	for _, env := range []string{"development", "dev", "DEVELOPMENT"} {
		if _, ok := consoleWriter(env).(zerolog.ConsoleWriter); !ok {
			t.Fatalf("expected console writer for env %q", env)
		}
	}

	for _, env := range []string{"production", "staging", ""} {
		if w := consoleWriter(env); w != os.Stdout {
			t.Fatalf("expected raw stdout JSON writer for env %q, got %T", env, w)
		}
	}
}
