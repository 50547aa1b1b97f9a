package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("Randomly selected image: %s", "road1.jpg")
	log.Warning("%s detection failed: %v", "Car", "missing model")
	log.Error("journal write failed")

	out := buf.String()
	expected := []string{
		"[INFO]", "Randomly selected image: road1.jpg",
		"[WARNING]", "Car detection failed: missing model",
		"[ERROR]", "journal write failed",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got: %s", want, out)
		}
	}
}

func TestNewWithFile_EmptyDir(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithFile(&buf, "")
	if err != nil {
		t.Fatalf("NewWithFile failed: %v", err)
	}
	defer log.Close()

	log.Info("console only")
	if !strings.Contains(buf.String(), "console only") {
		t.Errorf("Expected console output, got: %s", buf.String())
	}
}

func TestNewWithFile_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	var buf bytes.Buffer
	log, err := NewWithFile(&buf, dir)
	if err != nil {
		t.Fatalf("NewWithFile failed: %v", err)
	}

	log.Info("Driving allowed: %t", true)
	if err := log.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "roadcheck.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Driving allowed: true") {
		t.Errorf("Expected log file to contain entry, got: %s", data)
	}
	if !strings.Contains(buf.String(), "Driving allowed: true") {
		t.Errorf("Expected console to contain entry, got: %s", buf.String())
	}
}
