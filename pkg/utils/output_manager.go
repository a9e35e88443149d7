package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoOutputDir is returned when no target directory can be derived
var ErrNoOutputDir = errors.New("no output directory")

// OutputManager handles output file naming inside one directory
type OutputManager struct {
	BaseOutputDir string
	Prefix        string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir, prefix string) *OutputManager {
	if prefix == "" {
		prefix = "Export"
	}
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
		Prefix:        prefix,
	}
}

// DirFromModelPath returns the directory a saved model lives in
func DirFromModelPath(modelPath string) (string, error) {
	if strings.TrimSpace(modelPath) == "" {
		return "", ErrNoOutputDir
	}
	return filepath.Dir(modelPath), nil
}

// BaseName builds Prefix[YYYY-MM-DD][HHhMMm]
func (om *OutputManager) BaseName(now time.Time) string {
	return fmt.Sprintf("%s[%s][%s]", om.Prefix, now.Format("2006-01-02"), now.Format("15h04m"))
}

// CandidatePath returns the n-th candidate path; n == 0 has no suffix
func (om *OutputManager) CandidatePath(now time.Time, ext string, n int) string {
	name := om.BaseName(now)
	if n > 0 {
		name = fmt.Sprintf("%s (%d)", name, n)
	}
	return filepath.Join(om.BaseOutputDir, name+ext)
}

// CreateExclusive writes data to the first free candidate path and returns it.
// Existing files are never overwritten.
func (om *OutputManager) CreateExclusive(now time.Time, ext string, data []byte) (string, error) {
	if om.BaseOutputDir == "" {
		return "", ErrNoOutputDir
	}
	if err := om.EnsureOutputDirExists(); err != nil {
		return "", err
	}
	for n := 0; ; n++ {
		path := om.CandidatePath(now, ext, n)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create output file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("failed to write output file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close output file: %w", err)
		}
		return path, nil
	}
}

// GetFileType determines the file type based on extension
func GetFileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		return "excel"
	case ".txt":
		return "text"
	case ".xml":
		return "xml"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "unknown"
	}
}

// EnsureOutputDirExists ensures the base output directory exists
func (om *OutputManager) EnsureOutputDirExists() error {
	return os.MkdirAll(om.BaseOutputDir, 0755)
}
