package model

import "strconv"

// ElementID identifies an element inside one host model
type ElementID int64

func (id ElementID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Category is the structural category tag of an element
type Category string

const (
	CategoryNone       Category = ""
	CategoryColumn     Category = "column"
	CategoryFraming    Category = "framing"
	CategoryFoundation Category = "foundation"
	CategoryFloor      Category = "floor"
	CategoryWall       Category = "wall"
	CategoryAssembly   Category = "assembly"
	CategoryRebar      Category = "rebar"
	CategoryType       Category = "type"
)

// StorageKind is how the host stores a parameter value
type StorageKind int

const (
	StorageNone StorageKind = iota
	StorageNumber
	StorageInteger
	StorageText
)

func (k StorageKind) String() string {
	switch k {
	case StorageNumber:
		return "number"
	case StorageInteger:
		return "integer"
	case StorageText:
		return "text"
	default:
		return "none"
	}
}

// ParseStorageKind maps the textual kind used by snapshots back to a StorageKind
func ParseStorageKind(s string) StorageKind {
	switch s {
	case "number", "double":
		return StorageNumber
	case "integer", "int":
		return StorageInteger
	case "text", "string":
		return StorageText
	default:
		return StorageNone
	}
}

// Parameter is a named value on an element or on its type.
// Value holds the raw internal number (feet based for lengths and volumes),
// Text the stored string and Display the host formatted text.
type Parameter struct {
	Kind    StorageKind `json:"kind"`
	Value   float64     `json:"value"`
	Text    string      `json:"text"`
	Display string      `json:"display"`
}

// AsDouble returns the raw number when the parameter has numeric storage
func (p Parameter) AsDouble() (float64, bool) {
	if p.Kind == StorageNumber || p.Kind == StorageInteger {
		return p.Value, true
	}
	return 0, false
}

// AsInteger returns the integer value, 0 for non-integer storage
func (p Parameter) AsInteger() int64 {
	if p.Kind == StorageInteger {
		return int64(p.Value)
	}
	return 0
}

// AsString returns the stored string of a text parameter
func (p Parameter) AsString() string {
	if p.Kind == StorageText {
		return p.Text
	}
	return ""
}

// AsValueString returns the display text
func (p Parameter) AsValueString() string {
	if p.Display != "" {
		return p.Display
	}
	switch p.Kind {
	case StorageText:
		return p.Text
	case StorageInteger:
		return strconv.FormatInt(int64(p.Value), 10)
	case StorageNumber:
		return strconv.FormatFloat(p.Value, 'f', -1, 64)
	}
	return ""
}

// Element is a read-only view of one host element
type Element struct {
	ID         ElementID            `json:"id"`
	UniqueID   string               `json:"unique_id"`
	Category   Category             `json:"category"`
	TypeID     ElementID            `json:"type_id,omitempty"`
	AssemblyID ElementID            `json:"assembly_id,omitempty"`
	Members    []ElementID          `json:"members,omitempty"`
	Params     map[string]Parameter `json:"params,omitempty"`
}

// Parameter looks up an instance parameter by exact name
func (e *Element) Parameter(name string) (Parameter, bool) {
	if e == nil || name == "" {
		return Parameter{}, false
	}
	p, ok := e.Params[name]
	return p, ok
}

// IsAssembly reports whether the element is a composite instance
func (e *Element) IsAssembly() bool {
	return e.Category == CategoryAssembly
}

// Host is the model the exporter reads from
type Host interface {
	Selection() []ElementID
	Element(id ElementID) (*Element, bool)
	ElementByUniqueID(uid string) (*Element, bool)
	DocumentPath() string
}

// ParameterWriter sets text parameters on elements.
// It reports false when the element has no parameter of that name.
type ParameterWriter interface {
	SetParameter(id ElementID, name, value string) (bool, error)
}
