package model

import "testing"

func TestParameterAccessors(t *testing.T) {
	length := Parameter{Kind: StorageNumber, Value: 9.84252, Display: "3,00"}
	if v, ok := length.AsDouble(); !ok || v != 9.84252 {
		t.Errorf("AsDouble = %v, %v", v, ok)
	}
	if length.AsString() != "" || length.AsInteger() != 0 {
		t.Errorf("number parameter leaked text or integer value")
	}
	if length.AsValueString() != "3,00" {
		t.Errorf("AsValueString = %q", length.AsValueString())
	}

	qty := Parameter{Kind: StorageInteger, Value: 12}
	if qty.AsInteger() != 12 || qty.AsValueString() != "12" {
		t.Errorf("integer parameter = %d, %q", qty.AsInteger(), qty.AsValueString())
	}

	class := Parameter{Kind: StorageText, Text: "C40"}
	if _, ok := class.AsDouble(); ok {
		t.Errorf("text parameter reported a number")
	}
	if class.AsString() != "C40" || class.AsValueString() != "C40" {
		t.Errorf("text parameter = %q, %q", class.AsString(), class.AsValueString())
	}

	if (Parameter{}).AsValueString() != "" {
		t.Errorf("empty parameter has display text")
	}
}

func TestMandatoryFieldsIsFresh(t *testing.T) {
	first := MandatoryFields()
	first[0] = FieldNotes
	second := MandatoryFields()
	if second[0] != FieldName || len(second) != 7 {
		t.Errorf("MandatoryFields() = %v, callers must not share state", second)
	}
}

func TestParseStorageKind(t *testing.T) {
	for _, k := range []StorageKind{StorageNumber, StorageInteger, StorageText} {
		if got := ParseStorageKind(k.String()); got != k {
			t.Errorf("ParseStorageKind(%q) = %v", k.String(), got)
		}
	}
	if ParseStorageKind("blob") != StorageNone {
		t.Errorf("unknown kind must map to StorageNone")
	}
}

func TestSnapshot(t *testing.T) {
	snap := NewSnapshot("")
	snap.Add(&Element{ID: 7, UniqueID: "a", Category: CategoryWall})
	snap.Add(&Element{ID: 8, UniqueID: "b", Category: CategoryFloor, Params: map[string]Parameter{
		"20. Status da Peça": {Kind: StorageText},
	}})
	snap.Add(&Element{ID: 7, UniqueID: "c", Category: CategoryColumn})
	snap.Select(8, 7)

	if _, ok := snap.ElementByUniqueID("a"); ok {
		t.Errorf("replaced element still indexed by its old unique id")
	}
	el, ok := snap.ElementByUniqueID("c")
	if !ok || el.Category != CategoryColumn || el.Params == nil {
		t.Errorf("replacement = %+v", el)
	}
	if els := snap.Elements(); len(els) != 2 || els[0].ID != 7 || els[1].ID != 8 {
		t.Errorf("elements = %v", els)
	}

	sel := snap.Selection()
	sel[0] = 99
	if snap.Selection()[0] != 8 {
		t.Errorf("Selection must return a copy")
	}

	if ok, _ := snap.SetParameter(8, "20. Status da Peça", "Programada"); !ok {
		t.Fatal("SetParameter on an existing parameter failed")
	}
	b, _ := snap.Element(8)
	if b.Params["20. Status da Peça"].AsString() != "Programada" {
		t.Errorf("parameter = %+v", b.Params["20. Status da Peça"])
	}
	if ok, _ := snap.SetParameter(8, "21. Data do Status", "20240305"); ok {
		t.Errorf("SetParameter created a parameter")
	}
	if ok, _ := snap.SetParameter(42, "x", "y"); ok {
		t.Errorf("SetParameter on a missing element succeeded")
	}
}
