package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBaseName(t *testing.T) {
	om := NewOutputManager("/tmp", "")
	now := time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)
	if got := om.BaseName(now); got != "Export[2024-03-05][09h07m]" {
		t.Errorf("BaseName = %q", got)
	}
}

func TestCreateExclusive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om := NewOutputManager(dir, "Export")
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)

	first, err := om.CreateExclusive(now, ".xml", []byte("a"))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := om.CreateExclusive(now, ".xml", []byte("b"))
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if filepath.Base(first) != "Export[2024-03-05][14h30m].xml" {
		t.Errorf("first = %s", first)
	}
	if filepath.Base(second) != "Export[2024-03-05][14h30m] (1).xml" {
		t.Errorf("second = %s", second)
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "a" {
		t.Errorf("first file was overwritten: %q, %v", data, err)
	}
}

func TestCreateExclusiveWithoutDir(t *testing.T) {
	_, err := NewOutputManager("", "").CreateExclusive(time.Now(), ".xml", nil)
	if !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("err = %v, want ErrNoOutputDir", err)
	}
}

func TestDirFromModelPath(t *testing.T) {
	if _, err := DirFromModelPath("  "); !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("unsaved model: err = %v", err)
	}
	dir, err := DirFromModelPath(filepath.Join("projetos", "serpa.rvt"))
	if err != nil || dir != "projetos" {
		t.Errorf("dir = %q, %v", dir, err)
	}
}

func TestGetFileType(t *testing.T) {
	tests := map[string]string{
		"model.XLSX": "excel",
		"status.txt": "text",
		"model.db":   "sqlite",
		"model.rvt":  "unknown",
		"export.xml": "xml",
	}
	for name, want := range tests {
		if got := GetFileType(name); got != want {
			t.Errorf("GetFileType(%q) = %q, want %q", name, got, want)
		}
	}
}
