package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}
	if logger.cfg.caller {
		t.Error("expected caller disabled by default")
	}
	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelDebug))

	logger.Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()
	logger2 := Make(&buf, WithLevel(LevelError))
	logger2.Info("info message")
	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger2.Error("error message")
	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_Trace_RendersTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))

	logger.Trace("deep detail")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}
	if record["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", record["level"])
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "core.Item"))

	logger.Info("registered")

	if !strings.Contains(buf.String(), `"component":"core.Item"`) {
		t.Errorf("expected attribute in output, got: %s", buf.String())
	}
}

func TestLogger_Wrap_OverridesConfiguration(t *testing.T) {
	var first, second bytes.Buffer
	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("to second")
	base.Debug("dropped")

	if first.Len() != 0 {
		t.Errorf("base logger should not emit debug, got %q", first.String())
	}
	if !strings.Contains(second.String(), "to second") {
		t.Errorf("wrapped logger should emit debug, got %q", second.String())
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	logger.Info("nothing happens")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level from zero value, got %v", logger.Level())
	}
}

func TestLogger_Pretty_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf,
		WithPretty(true),
		WithTimeLayout("none"),
	).With(slog.String("pkg", "core"))

	logger.Warn("ambiguous", slog.Int("candidates", 2), slog.Bool("fatal", true))

	out := buf.String()
	for _, want := range []string{"warn", "ambiguous", "pkg", "core", "candidates", "2", "true"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in pretty output %q", want, out)
		}
	}
	if strings.Contains(out, slog.TimeKey) {
		t.Errorf("expected timestamps disabled, got %q", out)
	}
}
