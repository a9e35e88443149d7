package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
)

// naturalChunks splits s into alternating text and digit runs, always starting
// with a (possibly empty) text run so equal positions hold the same kind.
func naturalChunks(s string) []string {
	chunks := []string{""}
	digits := false
	start := 0
	for i := 0; i < len(s); i++ {
		d := s[i] >= '0' && s[i] <= '9'
		if d == digits {
			continue
		}
		chunks[len(chunks)-1] = s[start:i]
		chunks = append(chunks, "")
		start = i
		digits = d
	}
	chunks[len(chunks)-1] = s[start:]
	return chunks
}

// compareDigits compares two digit runs by numeric value
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// NaturalCompare orders strings with digit runs compared as numbers and
// text runs compared case-insensitively.
func NaturalCompare(a, b string) int {
	fold := cases.Fold()
	ca, cb := naturalChunks(a), naturalChunks(b)
	for i := 0; i < len(ca) && i < len(cb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ca[i], cb[i])
		} else {
			c = strings.Compare(fold.String(ca[i]), fold.String(cb[i]))
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(ca) < len(cb):
		return -1
	case len(ca) > len(cb):
		return 1
	}
	return 0
}

// NaturalLess reports whether a sorts before b in natural order
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// SortPieces orders records by display name, keeping encounter order on ties
func SortPieces(records []model.PieceRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return NaturalLess(records[i].Name, records[j].Name)
	})
}
