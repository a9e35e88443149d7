package model

// Field is a logical export field
type Field int

const (
	FieldName Field = iota
	FieldMark
	FieldControlCode
	FieldDrawing
	FieldProduct
	FieldGroup
	FieldSection
	FieldInfo
	FieldLength
	FieldHeight
	FieldWidth
	FieldVolume
	FieldWeight
	FieldArea
	FieldConcreteClass
	FieldFinish
	FieldCover
	FieldNotes
)

var fieldNames = [...]string{
	FieldName:          "name",
	FieldMark:          "mark",
	FieldControlCode:   "control_code",
	FieldDrawing:       "drawing",
	FieldProduct:       "product",
	FieldGroup:         "group",
	FieldSection:       "section",
	FieldInfo:          "info",
	FieldLength:        "length",
	FieldHeight:        "height",
	FieldWidth:         "width",
	FieldVolume:        "volume",
	FieldWeight:        "weight",
	FieldArea:          "area",
	FieldConcreteClass: "concrete_class",
	FieldFinish:        "finish",
	FieldCover:         "cover",
	FieldNotes:         "notes",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// Conversion is how a raw parameter becomes export text
type Conversion int

const (
	// ConvertText uses the display text with comma decimals rewritten
	ConvertText Conversion = iota
	// ConvertVolume multiplies the raw cubic feet by CubicFeetToCubicMeters
	ConvertVolume
	// ConvertNumeric formats the raw number, falling back to display text
	ConvertNumeric
)

const (
	CubicFeetToCubicMeters = 0.028316846592
	FeetToMeters           = 0.3048
)

// FieldSpec maps a logical field to its physical parameter
type FieldSpec struct {
	Field      Field
	Physical   string
	Conversion Conversion
}

// FieldNames holds the physical parameter name of every logical field.
// An empty name means the field is not exported.
type FieldNames struct {
	Name          string `yaml:"name"`
	Mark          string `yaml:"mark"`
	ControlCode   string `yaml:"control_code"`
	Drawing       string `yaml:"drawing"`
	Product       string `yaml:"product"`
	Group         string `yaml:"group"`
	Section       string `yaml:"section"`
	Info          string `yaml:"info"`
	Length        string `yaml:"length"`
	Height        string `yaml:"height"`
	Width         string `yaml:"width"`
	Volume        string `yaml:"volume"`
	Weight        string `yaml:"weight"`
	Area          string `yaml:"area"`
	ConcreteClass string `yaml:"concrete_class"`
	Finish        string `yaml:"finish"`
	Cover         string `yaml:"cover"`
	Notes         string `yaml:"notes"`
}

// Physical returns the parameter name configured for f
func (n FieldNames) Physical(f Field) string {
	switch f {
	case FieldName:
		return n.Name
	case FieldMark:
		return n.Mark
	case FieldControlCode:
		return n.ControlCode
	case FieldDrawing:
		return n.Drawing
	case FieldProduct:
		return n.Product
	case FieldGroup:
		return n.Group
	case FieldSection:
		return n.Section
	case FieldInfo:
		return n.Info
	case FieldLength:
		return n.Length
	case FieldHeight:
		return n.Height
	case FieldWidth:
		return n.Width
	case FieldVolume:
		return n.Volume
	case FieldWeight:
		return n.Weight
	case FieldArea:
		return n.Area
	case FieldConcreteClass:
		return n.ConcreteClass
	case FieldFinish:
		return n.Finish
	case FieldCover:
		return n.Cover
	case FieldNotes:
		return n.Notes
	}
	return ""
}

// Envelope carries the root attributes of the export document
type Envelope struct {
	Site     string `yaml:"site"`
	Project  string `yaml:"project"`
	Designer string `yaml:"designer"`
}

// RebarSpec names the parameters read from reinforcement bars and their types
type RebarSpec struct {
	Mark        string `yaml:"mark"`
	Quantity    string `yaml:"quantity"`
	TotalLength string `yaml:"total_length"`
	Material    string `yaml:"material"`
	TypeName    string `yaml:"type_name"`
	SteelLabel  string `yaml:"steel_label"`
	WireLabel   string `yaml:"wire_label"`
	StrandLabel string `yaml:"strand_label"`
}

// Derivation strategies for weight and area
const (
	StrategyDerived   = "derived"
	StrategyParameter = "parameter"
)

// DeriveSpec controls how computed outputs are produced
type DeriveSpec struct {
	Weight         string  `yaml:"weight"`
	Area           string  `yaml:"area"`
	Density        float64 `yaml:"density"`
	LengthDivisor  float64 `yaml:"length_divisor"`
	SectionDivisor float64 `yaml:"section_divisor"`
}

// Features toggles the optional aggregation passes
type Features struct {
	AssemblyRollup bool `yaml:"assembly_rollup"`
	SubTables      bool `yaml:"sub_tables"`
}

// StatusSpec configures the fixed-width status import
type StatusSpec struct {
	ControlCode string            `yaml:"control_code"`
	Status      string            `yaml:"status"`
	Date        string            `yaml:"date"`
	Codes       map[string]string `yaml:"codes"`
}

// OutputSpec configures where and how the document is written
type OutputSpec struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// ExportSpec is the whole configuration of one export or import run
type ExportSpec struct {
	Envelope Envelope   `yaml:"envelope"`
	Fields   FieldNames `yaml:"fields"`
	Rebar    RebarSpec  `yaml:"rebar"`
	Derive   DeriveSpec `yaml:"derive"`
	Features Features   `yaml:"features"`
	Status   StatusSpec `yaml:"status"`
	Output   OutputSpec `yaml:"output"`
	LogMode  string     `yaml:"log_mode"`
}

// FieldSpec returns the lookup rule for f
func (s *ExportSpec) FieldSpec(f Field) FieldSpec {
	conv := ConvertText
	switch f {
	case FieldVolume:
		conv = ConvertVolume
	case FieldWeight:
		conv = ConvertNumeric
	}
	return FieldSpec{Field: f, Physical: s.Fields.Physical(f), Conversion: conv}
}

// MandatoryFields returns the fields an element must carry to be exported,
// in the order they are checked. FieldLength is redirected per category.
func MandatoryFields() []Field {
	return []Field{
		FieldName,
		FieldProduct,
		FieldGroup,
		FieldSection,
		FieldInfo,
		FieldLength,
		FieldVolume,
	}
}
