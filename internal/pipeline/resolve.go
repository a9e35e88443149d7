package pipeline

import (
	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

type resolveKey struct {
	id    model.ElementID
	field model.Field
}

// Resolver reads logical fields from elements, instance level first and type level second.
// Results are memoised per element so each stripped character is reported once.
type Resolver struct {
	host  model.Host
	spec  *model.ExportSpec
	log   *logger.Logger
	san   *Sanitizer
	cache map[resolveKey]string
	names map[model.ElementID]string
}

// NewResolver creates a resolver over host
func NewResolver(host model.Host, spec *model.ExportSpec, log *logger.Logger, tracker *RunTracker) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		host:  host,
		spec:  spec,
		log:   log,
		san:   NewSanitizer(log, tracker),
		cache: make(map[resolveKey]string),
		names: make(map[model.ElementID]string),
	}
}

// TypeOf returns the type element of el
func (r *Resolver) TypeOf(el *model.Element) (*model.Element, bool) {
	if el == nil || el.TypeID == 0 {
		return nil, false
	}
	return r.host.Element(el.TypeID)
}

// Lookup returns the first non-blank parameter named name, trying the instance
// and then its type. A parameter that exists but is blank is returned when
// nothing better is found, with found=true.
func (r *Resolver) Lookup(el *model.Element, name string) (model.Parameter, bool) {
	if name == "" {
		return model.Parameter{}, false
	}
	var blank model.Parameter
	found := false
	for _, src := range r.sources(el) {
		p, ok := src.Parameter(name)
		if !ok {
			continue
		}
		if !isBlank(p) {
			return p, true
		}
		if !found {
			blank, found = p, true
		}
	}
	return blank, found
}

func (r *Resolver) sources(el *model.Element) []*model.Element {
	out := []*model.Element{el}
	if t, ok := r.TypeOf(el); ok {
		out = append(out, t)
	}
	return out
}

func isBlank(p model.Parameter) bool {
	if _, ok := p.AsDouble(); ok {
		return false
	}
	return p.AsValueString() == ""
}

// Defined reports whether the parameter behind f exists at either level
func (r *Resolver) Defined(el *model.Element, f model.Field) bool {
	_, ok := r.Lookup(el, r.spec.Fields.Physical(f))
	return ok
}

// Resolve returns the export text of field f on el; "" means unset
func (r *Resolver) Resolve(el *model.Element, f model.Field) string {
	key := resolveKey{id: el.ID, field: f}
	if v, ok := r.cache[key]; ok {
		return v
	}
	v := r.resolve(el, r.spec.FieldSpec(f))
	r.cache[key] = v
	return v
}

func (r *Resolver) resolve(el *model.Element, fs model.FieldSpec) string {
	p, ok := r.Lookup(el, fs.Physical)
	if !ok {
		return ""
	}
	switch fs.Conversion {
	case model.ConvertVolume:
		v, ok := p.AsDouble()
		if !ok {
			return ""
		}
		return utils.Fixed3(v * model.CubicFeetToCubicMeters)
	case model.ConvertNumeric:
		if v, ok := p.AsDouble(); ok {
			return utils.Fixed3(v)
		}
	}
	return r.text(el, fs.Physical, p.AsValueString())
}

func (r *Resolver) text(el *model.Element, parameter, value string) string {
	if value == "" {
		return ""
	}
	return r.san.Clean(utils.NormalizeDecimal(value),
		"piece", r.label(el),
		"unique_id", el.UniqueID,
		"parameter", parameter,
	)
}

// Number parses the resolved text of f; unparseable text counts as 0
func (r *Resolver) Number(el *model.Element, f model.Field) float64 {
	return utils.ParseDecimal(r.Resolve(el, f))
}

// DisplayName is the model name followed by the mark, falling back to the
// model name alone and then to the element id.
func (r *Resolver) DisplayName(el *model.Element) string {
	if n, ok := r.names[el.ID]; ok {
		return n
	}
	name := composeName(r.Resolve(el, model.FieldName), r.Resolve(el, model.FieldMark), el.ID)
	r.names[el.ID] = name
	return name
}

// label is DisplayName without sanitizer reports, used inside diagnostics
func (r *Resolver) label(el *model.Element) string {
	return composeName(r.quiet(el, model.FieldName), r.quiet(el, model.FieldMark), el.ID)
}

func (r *Resolver) quiet(el *model.Element, f model.Field) string {
	p, ok := r.Lookup(el, r.spec.Fields.Physical(f))
	if !ok {
		return ""
	}
	return StripMarkup(utils.NormalizeDecimal(p.AsValueString()), nil)
}

func composeName(name, mark string, id model.ElementID) string {
	switch {
	case name != "" && mark != "":
		return name + mark
	case name != "":
		return name
	default:
		return id.String()
	}
}
