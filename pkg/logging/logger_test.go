package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("should be filtered")
	logger.Warn("should appear", "key", "value")

	if bytes.Contains(buf.Bytes(), []byte("should be filtered")) {
		t.Error("info message logged at warn level")
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "should appear" {
		t.Errorf("expected msg %q, got %v", "should appear", entry["msg"])
	}
	if entry["key"] != "value" {
		t.Errorf("expected attr value, got %v", entry["key"])
	}
}

func TestNewUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "nonsense")

	logger.Debug("debug hidden")
	logger.Info("info shown")

	if bytes.Contains(buf.Bytes(), []byte("debug hidden")) {
		t.Error("debug message logged at default level")
	}
	if !bytes.Contains(buf.Bytes(), []byte("info shown")) {
		t.Error("info message missing at default level")
	}
}
