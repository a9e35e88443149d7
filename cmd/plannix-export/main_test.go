package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/internal/store"
)

func text(s string) model.Parameter {
	return model.Parameter{Kind: model.StorageText, Text: s, Display: s}
}

func writeModel(t *testing.T, selectIDs ...model.ElementID) string {
	t.Helper()
	snap := model.NewSnapshot(`C:\Projetos\Serpa.rvt`)
	snap.Add(&model.Element{ID: 1, UniqueID: "beam-1", Category: model.CategoryFraming, Params: map[string]model.Parameter{
		"Modelo":             text("V1"),
		"03. PRODUTO":        text("VIGA"),
		"04. GRUPO":          text("G1"),
		"05. SEÇÃO":          text("20x40"),
		"09. INFO ADICIONAL": text("-"),
		"08. COMPRIMENTO":    text("6,00"),
		"07. ALTURA":         text("40"),
		"06. LARGURA":        text("20"),
		"Volume":             {Kind: model.StorageNumber, Value: 1 / model.CubicFeetToCubicMeters},
	}})
	snap.Add(&model.Element{ID: 2, UniqueID: "door-1", Category: model.CategoryNone})
	snap.Select(selectIDs...)

	path := filepath.Join(t.TempDir(), "model.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.SaveSnapshot(snap); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunExportsSelection(t *testing.T) {
	t.Setenv("PLANNIX_CONFIG", "")
	out := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := run([]string{"-model", writeModel(t, 1), "-out", out, "-log", "prod"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Exported 1 pieces") {
		t.Errorf("stdout = %q", stdout.String())
	}
	entries, err := os.ReadDir(out)
	if err != nil || len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "Export[") {
		t.Fatalf("output dir = %v, %v", entries, err)
	}
	data, err := os.ReadFile(filepath.Join(out, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<NOMEPECA>V1</NOMEPECA>")) {
		t.Errorf("document does not list the piece:\n%s", data)
	}
}

func TestRunWritesWorkbookSnapshot(t *testing.T) {
	t.Setenv("PLANNIX_CONFIG", "")
	dir := t.TempDir()
	book := filepath.Join(dir, "model.xlsx")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-model", writeModel(t, 1), "-out", dir, "-snapshot", book}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	snap, err := store.LoadWorkbook(book)
	if err != nil {
		t.Fatalf("LoadWorkbook: %v", err)
	}
	if sel := snap.Selection(); len(sel) != 1 || sel[0] != 1 {
		t.Errorf("selection = %v", sel)
	}

	stdout.Reset()
	code = run([]string{"-model", book, "-out", filepath.Join(dir, "again")}, &stdout, &stderr)
	if code != 0 || !strings.Contains(stdout.String(), "Exported 1 pieces") {
		t.Errorf("export from workbook: code %d, stdout %q", code, stdout.String())
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("PLANNIX_CONFIG", "")
	tests := []struct {
		name string
		args func(t *testing.T) []string
		want int
	}{
		{"missing model flag", func(t *testing.T) []string { return nil }, 2},
		{"unknown flag", func(t *testing.T) []string { return []string{"-bogus"} }, 2},
		{"unsupported snapshot", func(t *testing.T) []string { return []string{"-model", "model.rvt"} }, 1},
		{"empty selection", func(t *testing.T) []string { return []string{"-model", writeModel(t), "-out", t.TempDir()} }, 1},
		{"nothing exportable", func(t *testing.T) []string { return []string{"-model", writeModel(t, 2), "-out", t.TempDir()} }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args(t), &stdout, &stderr); got != tt.want {
				t.Errorf("exit code = %d, want %d (stderr %q)", got, tt.want, stderr.String())
			}
		})
	}
}
