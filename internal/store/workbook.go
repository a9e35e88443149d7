package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
)

// Workbook sheet layout of a model snapshot
const (
	SheetDocument   = "Document"
	SheetElements   = "Elements"
	SheetParameters = "Parameters"
	SheetMembers    = "Members"
	SheetSelection  = "Selection"
)

var sheetHeaders = map[string][]interface{}{
	SheetDocument:   {"Key", "Value"},
	SheetElements:   {"ID", "UniqueId", "Category", "TypeId", "AssemblyId"},
	SheetParameters: {"ElementId", "Name", "Kind", "Value", "Text", "Display"},
	SheetMembers:    {"AssemblyId", "MemberId"},
	SheetSelection:  {"ElementId"},
}

var sheetOrder = []string{SheetDocument, SheetElements, SheetParameters, SheetMembers, SheetSelection}

// WriteWorkbook saves snap as an .xlsx workbook
func WriteWorkbook(snap *model.Snapshot, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, name := range sheetOrder {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		header := sheetHeaders[name]
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	rows := map[string]int{}
	put := func(sheet string, values ...interface{}) error {
		rows[sheet]++
		cell, err := excelize.CoordinatesToCellName(1, rows[sheet]+1)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := put(SheetDocument, "path", snap.DocumentPath()); err != nil {
		return err
	}
	for _, el := range snap.Elements() {
		if err := put(SheetElements, el.ID.String(), el.UniqueID, string(el.Category), el.TypeID.String(), el.AssemblyID.String()); err != nil {
			return err
		}
		for name, p := range el.Params {
			value := strconv.FormatFloat(p.Value, 'g', -1, 64)
			if err := put(SheetParameters, el.ID.String(), name, p.Kind.String(), value, p.Text, p.Display); err != nil {
				return err
			}
		}
		for _, m := range el.Members {
			if err := put(SheetMembers, el.ID.String(), m.String()); err != nil {
				return err
			}
		}
	}
	for _, id := range snap.Selection() {
		if err := put(SheetSelection, id.String()); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// LoadWorkbook reads a snapshot written by WriteWorkbook or by a schedule export
// following the same sheet layout.
func LoadWorkbook(path string) (*model.Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	read := func(sheet string) ([][]string, error) {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if len(rows) > 0 {
			rows = rows[1:]
		}
		return rows, nil
	}

	docRows, err := read(SheetDocument)
	if err != nil {
		return nil, err
	}
	var docPath string
	for _, r := range docRows {
		if cell(r, 0) == "path" {
			docPath = cell(r, 1)
		}
	}
	snap := model.NewSnapshot(docPath)

	elRows, err := read(SheetElements)
	if err != nil {
		return nil, err
	}
	elements := make(map[model.ElementID]*model.Element, len(elRows))
	var order []model.ElementID
	for i, r := range elRows {
		id, err := parseID(cell(r, 0))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetElements, i+2, err)
		}
		typeID, _ := parseID(cell(r, 3))
		asmID, _ := parseID(cell(r, 4))
		elements[id] = &model.Element{
			ID:         id,
			UniqueID:   cell(r, 1),
			Category:   model.Category(cell(r, 2)),
			TypeID:     typeID,
			AssemblyID: asmID,
			Params:     make(map[string]model.Parameter),
		}
		order = append(order, id)
	}

	paramRows, err := read(SheetParameters)
	if err != nil {
		return nil, err
	}
	for i, r := range paramRows {
		id, err := parseID(cell(r, 0))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetParameters, i+2, err)
		}
		el, ok := elements[id]
		if !ok {
			continue
		}
		value, _ := strconv.ParseFloat(cell(r, 3), 64)
		el.Params[cell(r, 1)] = model.Parameter{
			Kind:    model.ParseStorageKind(cell(r, 2)),
			Value:   value,
			Text:    cell(r, 4),
			Display: cell(r, 5),
		}
	}

	memberRows, err := read(SheetMembers)
	if err != nil {
		return nil, err
	}
	for _, r := range memberRows {
		asm, err1 := parseID(cell(r, 0))
		member, err2 := parseID(cell(r, 1))
		if err1 != nil || err2 != nil {
			continue
		}
		if el, ok := elements[asm]; ok {
			el.Members = append(el.Members, member)
		}
	}

	for _, id := range order {
		snap.Add(elements[id])
	}

	selRows, err := read(SheetSelection)
	if err != nil {
		return nil, err
	}
	for _, r := range selRows {
		if id, err := parseID(cell(r, 0)); err == nil {
			snap.Select(id)
		}
	}
	return snap, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func parseID(s string) (model.ElementID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid element id %q", s)
	}
	return model.ElementID(n), nil
}
