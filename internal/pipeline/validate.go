package pipeline

import (
	"errors"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

// ErrNoValidElements is returned when filtering or validation leaves nothing to export
var ErrNoValidElements = errors.New("no valid elements to export")

var exportableCategories = map[model.Category]bool{
	model.CategoryColumn:     true,
	model.CategoryFraming:    true,
	model.CategoryFoundation: true,
	model.CategoryFloor:      true,
	model.CategoryWall:       true,
	model.CategoryAssembly:   true,
}

// categoryVariant tells which logical field feeds the length and height slots
type categoryVariant struct {
	lengthSource model.Field
	heightSource model.Field
}

var standardVariant = categoryVariant{lengthSource: model.FieldLength, heightSource: model.FieldHeight}

// Columns are measured along the opposite axis.
var categoryVariants = map[model.Category]categoryVariant{
	model.CategoryColumn: {lengthSource: model.FieldHeight, heightSource: model.FieldLength},
}

func variantFor(c model.Category) categoryVariant {
	if v, ok := categoryVariants[c]; ok {
		return v
	}
	return standardVariant
}

// mandatoryFor returns the mandatory fields for category c in check order
func mandatoryFor(c model.Category) []model.Field {
	v := variantFor(c)
	out := model.MandatoryFields()
	for i, f := range out {
		if f == model.FieldLength {
			out[i] = v.lengthSource
		}
	}
	return out
}

// FilterCategories keeps elements of exportable structural categories
func FilterCategories(elements []*model.Element, log *logger.Logger) []*model.Element {
	out := make([]*model.Element, 0, len(elements))
	for _, el := range elements {
		if exportableCategories[el.Category] {
			out = append(out, el)
			continue
		}
		log.Debug("element category is not exported", "element_id", el.ID, "category", string(el.Category))
	}
	if rejected := len(elements) - len(out); rejected > 0 && len(out) > 0 {
		log.Warn("elements outside the exported categories were ignored", "rejected", rejected)
	}
	return out
}

// ValidateRequired drops elements missing a mandatory field
func ValidateRequired(elements []*model.Element, res *Resolver, log *logger.Logger) []*model.Element {
	out := make([]*model.Element, 0, len(elements))
	for _, el := range elements {
		if f, defined, ok := firstMissing(el, res); !ok {
			reason := "empty"
			if !defined {
				reason = "not defined"
			}
			log.Warn("element removed from export: mandatory parameter missing",
				"piece", res.DisplayName(el),
				"unique_id", el.UniqueID,
				"field", f.String(),
				"parameter", res.spec.Fields.Physical(f),
				"reason", reason,
			)
			continue
		}
		out = append(out, el)
	}
	return out
}

func firstMissing(el *model.Element, res *Resolver) (model.Field, bool, bool) {
	for _, f := range mandatoryFor(el.Category) {
		if res.Resolve(el, f) == "" {
			return f, res.Defined(el, f), false
		}
	}
	return 0, false, true
}
