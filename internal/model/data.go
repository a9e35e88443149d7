package model

import "time"

// RebarPosition is one row of a piece's reinforcement table
type RebarPosition struct {
	Mark        string  `json:"mark"`
	Product     string  `json:"product"`
	Type        string  `json:"type"`
	Diameter    string  `json:"diameter"`
	Quantity    int64   `json:"quantity"`
	TotalLength float64 `json:"total_length"` // metres
}

// Complement is a non-principal assembly member summarised by product
type Complement struct {
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Volume   float64 `json:"volume"` // average, m³
	Weight   float64 `json:"weight"` // average, kg
}

// PieceRecord is one PECA block of the export document.
// Numeric fields are already formatted with three decimals.
type PieceRecord struct {
	Name          string          `json:"name"`
	ControlCode   string          `json:"control_code"`
	Drawing       string          `json:"drawing"`
	Product       string          `json:"product"`
	Group         string          `json:"group"`
	Section       string          `json:"section"`
	Info          string          `json:"info"`
	Quantity      int             `json:"quantity"`
	Length        string          `json:"length"`
	Height        string          `json:"height"`
	Width         string          `json:"width"`
	Volume        string          `json:"volume"`
	Weight        string          `json:"weight"`
	Area          string          `json:"area"`
	ConcreteClass string          `json:"concrete_class"`
	Finish        string          `json:"finish"`
	Cover         string          `json:"cover"`
	Notes         string          `json:"notes"`
	IDs           []string        `json:"ids"`
	Rebar         []RebarPosition `json:"rebar,omitempty"`
	Complements   []Complement    `json:"complements,omitempty"`
}

// Document is the full export: envelope plus ordered pieces
type Document struct {
	Envelope Envelope      `json:"envelope"`
	Pieces   []PieceRecord `json:"pieces"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Bytes       int       `json:"bytes"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ImportResult summarises one status import
type ImportResult struct {
	Lines    int `json:"lines"`
	Accepted int `json:"accepted"`
	Rejected int `json:"rejected"`
	Written  int `json:"written"`
}
