package store

import (
	"path/filepath"
	"testing"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	snap := model.NewSnapshot(`C:\Projetos\Serpa\Projeto.rvt`)
	snap.Add(&model.Element{ID: 500, UniqueID: "type-500", Category: model.CategoryType, Params: map[string]model.Parameter{
		"12. FCK": {Kind: model.StorageText, Text: "C40", Display: "C40"},
	}})
	snap.Add(&model.Element{ID: 1, UniqueID: "beam", Category: model.CategoryFraming, TypeID: 500, AssemblyID: 900, Params: map[string]model.Parameter{
		"Modelo":             {Kind: model.StorageText, Text: "V1", Display: "V1"},
		"Volume":             {Kind: model.StorageNumber, Value: 35.314667, Display: "1.00 m³"},
		"Quantidade":         {Kind: model.StorageInteger, Value: 4},
		"20. Status da Peça": {Kind: model.StorageText},
	}})
	snap.Add(&model.Element{ID: 2, UniqueID: "bar", Category: model.CategoryRebar, AssemblyID: 900})
	snap.Add(&model.Element{ID: 900, UniqueID: "asm", Category: model.CategoryAssembly, Members: []model.ElementID{2, 1}})
	snap.Select(900, 1)
	return snap
}

func checkSnapshot(t *testing.T, got *model.Snapshot) {
	t.Helper()
	if got.DocumentPath() != `C:\Projetos\Serpa\Projeto.rvt` {
		t.Errorf("path = %q", got.DocumentPath())
	}
	sel := got.Selection()
	if len(sel) != 2 || sel[0] != 900 || sel[1] != 1 {
		t.Errorf("selection = %v", sel)
	}
	beam, ok := got.ElementByUniqueID("beam")
	if !ok {
		t.Fatal("beam missing")
	}
	if beam.Category != model.CategoryFraming || beam.TypeID != 500 || beam.AssemblyID != 900 {
		t.Errorf("beam = %+v", beam)
	}
	vol := beam.Params["Volume"]
	if v, ok := vol.AsDouble(); !ok || v != 35.314667 || vol.Display != "1.00 m³" {
		t.Errorf("volume = %+v", vol)
	}
	if q := beam.Params["Quantidade"].AsInteger(); q != 4 {
		t.Errorf("quantity = %d", q)
	}
	asm, ok := got.Element(900)
	if !ok || len(asm.Members) != 2 || asm.Members[0] != 2 || asm.Members[1] != 1 {
		t.Errorf("assembly members = %+v", asm)
	}
	typ, _ := got.Element(500)
	if typ.Params["12. FCK"].AsString() != "C40" {
		t.Errorf("type parameter = %+v", typ.Params["12. FCK"])
	}
}

func TestStoreSnapshot(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.SaveSnapshot(sampleSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	got, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	checkSnapshot(t, got)
}

func TestStoreSetParameter(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if err := s.SaveSnapshot(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	ok, err := s.SetParameter(1, "20. Status da Peça", "Expedida para a Obra")
	if err != nil || !ok {
		t.Fatalf("SetParameter = %v, %v", ok, err)
	}
	ok, err = s.SetParameter(1, "21. Data do Status", "20240305")
	if err != nil || ok {
		t.Errorf("SetParameter on a missing parameter = %v, %v", ok, err)
	}

	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	beam, _ := snap.Element(1)
	if got := beam.Params["20. Status da Peça"].AsString(); got != "Expedida para a Obra" {
		t.Errorf("status = %q", got)
	}
	if _, ok := beam.Params["21. Data do Status"]; ok {
		t.Errorf("missing parameter was created")
	}
}

func TestStoreEmptyDocument(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "empty.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	snap, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.DocumentPath() != "" || len(snap.Selection()) != 0 || len(snap.Elements()) != 0 {
		t.Errorf("empty store produced %+v", snap)
	}
}
