package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "debug", Format: "json"}.SetupWriter(&buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Debug().Str("input", "40N").Msg("parsed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" || entry["input"] != "40N" || entry["message"] != "parsed" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetupLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "warn", Format: "console", NoColor: true}.SetupWriter(&buf)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("level filter not applied: %q", out)
	}
}

func TestSetupInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	Logger{Level: "loud", Format: "json"}.SetupWriter(&buf)

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", zerolog.GlobalLevel())
	}
}
