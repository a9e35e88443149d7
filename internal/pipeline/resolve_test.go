package pipeline

import (
	"testing"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
)

func TestResolveInstanceThenType(t *testing.T) {
	snap := model.NewSnapshot("")
	snap.Add(&model.Element{ID: 100, UniqueID: "type-100", Category: model.CategoryType, Params: map[string]model.Parameter{
		"03. PRODUTO": text("PILAR"),
		"04. GRUPO":   text("TYPE-GROUP"),
		"05. SEÇÃO":   text("30x30"),
	}})
	el := &model.Element{ID: 1, UniqueID: "u1", Category: model.CategoryColumn, TypeID: 100, Params: map[string]model.Parameter{
		"04. GRUPO": text("INSTANCE-GROUP"),
		"05. SEÇÃO": text(""),
	}}
	snap.Add(el)
	res, _ := newResolver(t, snap)

	tests := []struct {
		field model.Field
		want  string
	}{
		{model.FieldGroup, "INSTANCE-GROUP"},
		{model.FieldProduct, "PILAR"},
		{model.FieldSection, "30x30"},
		{model.FieldInfo, ""},
		{model.FieldDrawing, ""},
	}
	for _, tt := range tests {
		if got := res.Resolve(el, tt.field); got != tt.want {
			t.Errorf("Resolve(%s) = %q, want %q", tt.field, got, tt.want)
		}
	}
	if !res.Defined(el, model.FieldSection) {
		t.Errorf("section should be defined")
	}
	if res.Defined(el, model.FieldInfo) {
		t.Errorf("info should not be defined")
	}
}

func TestResolveConversions(t *testing.T) {
	tests := []struct {
		name  string
		field model.Field
		param model.Parameter
		want  string
	}{
		{"volume cubic feet to cubic metres", model.FieldVolume, num(35.314667), "1.000"},
		{"volume from text storage", model.FieldVolume, text("1,5"), ""},
		{"weight numeric", model.FieldWeight, num(1250.5), "1250.500"},
		{"weight display fallback", model.FieldWeight, text("1250,5"), "1250.5"},
		{"text comma decimal", model.FieldLength, text("6,25"), "6.25"},
		{"display of numeric text field", model.FieldHeight, model.Parameter{Kind: model.StorageNumber, Value: 1.3123, Display: "40,0"}, "40.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			snap := model.NewSnapshot("")
			el := addPiece(snap, 1, "u1", model.CategoryFraming, map[string]model.Parameter{
				spec.Fields.Physical(tt.field): tt.param,
			})
			res, _ := newResolver(t, snap)
			if got := res.Resolve(el, tt.field); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]model.Parameter
		want   string
	}{
		{"model and mark", map[string]model.Parameter{"Modelo": text("V"), "Marca": text("12")}, "V12"},
		{"model only", map[string]model.Parameter{"Modelo": text("V")}, "V"},
		{"mark only falls back to id", map[string]model.Parameter{"Marca": text("12")}, "42"},
		{"nothing", nil, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := model.NewSnapshot("")
			el := addPiece(snap, 42, "u42", model.CategoryFraming, tt.params)
			res, _ := newResolver(t, snap)
			if got := res.DisplayName(el); got != tt.want {
				t.Errorf("DisplayName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveReportsSanitizationOnce(t *testing.T) {
	snap := model.NewSnapshot("")
	el := addPiece(snap, 1, "u1", model.CategoryFraming, map[string]model.Parameter{
		"Modelo":      text("V<1>"),
		"03. PRODUTO": text("A&B"),
	})
	res, logs := newResolver(t, snap)
	for i := 0; i < 3; i++ {
		if got := res.Resolve(el, model.FieldProduct); got != "AB" {
			t.Fatalf("Resolve = %q", got)
		}
	}
	if got := res.DisplayName(el); got != "V1" {
		t.Fatalf("DisplayName = %q", got)
	}
	removals := logs.FilterMessage("removed character from exported text")
	if removals.Len() != 3 {
		t.Fatalf("logged %d removals, want 3", removals.Len())
	}
	for _, e := range removals.All() {
		if e.ContextMap()["piece"] != "V1" {
			t.Errorf("piece label = %v, want V1", e.ContextMap()["piece"])
		}
	}
}
