package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"lifecycle/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	log := NewWithWriter(cfg, &buf)
	log.Info().Str("orderId", "o1").Msg("captured")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if line["orderId"] != "o1" || line["message"] != "captured" || line["env"] != "dev" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestNew_LevelAndConsole(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogJSON = false
	cfg.LogLevel = "warn"
	log := NewWithWriter(cfg, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Fatalf("console writer produced json: %q", out)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.LogLevel = "loud"
	log := NewWithWriter(cfg, &buf)
	log.Debug().Msg("debug")
	log.Info().Msg("info")
	if strings.Contains(buf.String(), `"debug"`) || !strings.Contains(buf.String(), `"info"`) {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
