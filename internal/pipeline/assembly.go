package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

const complementKind = "ESTRUTURAL"

// otherMembers returns the members of el's assembly except el itself
func (g *Grouper) otherMembers(el *model.Element) []*model.Element {
	if el.AssemblyID == 0 {
		return nil
	}
	asm, ok := g.host.Element(el.AssemblyID)
	if !ok {
		return nil
	}
	var out []*model.Element
	for _, id := range asm.Members {
		if id == el.ID {
			continue
		}
		m, ok := g.host.Element(id)
		if !ok {
			g.skipMember(el, id, "member not found")
			continue
		}
		if m.Category == model.CategoryNone {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (g *Grouper) skipMember(el *model.Element, member model.ElementID, reason string) {
	g.tracker.MemberSkipped()
	g.log.Debug("assembly member skipped", "unique_id", el.UniqueID, "member_id", member, "reason", reason)
}

// memberVolume returns the instance volume of m in cubic metres
func (g *Grouper) memberVolume(el, m *model.Element) (float64, bool) {
	p, ok := m.Parameter(g.spec.Fields.Volume)
	if !ok {
		return 0, false
	}
	v, ok := p.AsDouble()
	if !ok {
		g.skipMember(el, m.ID, "volume is not numeric")
		return 0, false
	}
	v *= model.CubicFeetToCubicMeters
	return v, v > 0
}

// companionVolume sums the volume of members cast with the same concrete class
func (g *Grouper) companionVolume(el *model.Element) float64 {
	class := g.res.Resolve(el, model.FieldConcreteClass)
	if class == "" {
		return 0
	}
	total := 0.0
	for _, m := range g.otherMembers(el) {
		vol, ok := g.memberVolume(el, m)
		if !ok {
			continue
		}
		t, ok := g.res.TypeOf(m)
		if !ok {
			g.skipMember(el, m.ID, "member has no type")
			continue
		}
		p, ok := t.Parameter(g.spec.Fields.ConcreteClass)
		if !ok {
			continue
		}
		if StripMarkup(utils.NormalizeDecimal(p.AsValueString()), nil) != class {
			continue
		}
		total += vol
	}
	return total
}

// rebarTable groups the reinforcement bars of el's assembly by position
func (g *Grouper) rebarTable(el *model.Element) []model.RebarPosition {
	spec := g.spec.Rebar
	type rebarKey struct{ mark, product, subtype, diameter string }
	index := make(map[rebarKey]int)
	var out []model.RebarPosition
	for _, m := range g.otherMembers(el) {
		if m.Category != model.CategoryRebar {
			continue
		}
		mark := barMark(m, spec.Mark)
		if mark == "" {
			continue
		}
		var qty int64
		if p, ok := m.Parameter(spec.Quantity); ok {
			qty = p.AsInteger()
		}
		lp, ok := m.Parameter(spec.TotalLength)
		if !ok {
			g.skipMember(el, m.ID, "bar has no total length")
			continue
		}
		feet, ok := lp.AsDouble()
		if !ok {
			g.skipMember(el, m.ID, "bar length is not numeric")
			continue
		}
		t, ok := g.res.TypeOf(m)
		if !ok {
			g.skipMember(el, m.ID, "bar has no type")
			continue
		}
		var material, typeName string
		if p, ok := t.Parameter(spec.Material); ok {
			material = p.AsValueString()
		}
		if p, ok := t.Parameter(spec.TypeName); ok {
			typeName = p.AsValueString()
		}
		product, subtype := classifyMaterial(material, spec)
		key := rebarKey{mark, product, subtype, barDiameter(typeName)}
		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			out = append(out, model.RebarPosition{
				Mark:     key.mark,
				Product:  key.product,
				Type:     key.subtype,
				Diameter: key.diameter,
			})
		}
		out[i].Quantity += qty
		out[i].TotalLength += feet * model.FeetToMeters
	}
	sort.SliceStable(out, func(i, j int) bool {
		return NaturalLess(out[i].Mark, out[j].Mark)
	})
	return out
}

func barMark(m *model.Element, name string) string {
	p, ok := m.Parameter(name)
	if !ok {
		return ""
	}
	var n string
	switch p.Kind {
	case model.StorageInteger:
		n = strconv.FormatInt(p.AsInteger(), 10)
	case model.StorageText:
		n = p.AsString()
	default:
		n = p.AsValueString()
	}
	n = strings.TrimSpace(n)
	if n == "" {
		return ""
	}
	return "N" + n
}

// classifyMaterial splits a bar material into product family and subtype
func classifyMaterial(material string, spec model.RebarSpec) (string, string) {
	material = strings.TrimLeft(material, " \t")
	switch {
	case strings.HasPrefix(material, "CA-"):
		return spec.SteelLabel, material
	case strings.HasPrefix(material, "FIO"):
		return spec.WireLabel, strings.TrimLeft(material[len("FIO"):], " \t")
	case strings.HasPrefix(material, "CORD."):
		return spec.StrandLabel, strings.TrimLeft(material[len("CORD."):], " \t")
	default:
		return material, material
	}
}

func barDiameter(typeName string) string {
	d := strings.ReplaceAll(typeName, "Ø", "")
	d = strings.ReplaceAll(d, "RB", "")
	return strings.TrimSpace(d)
}

// complementTable summarises the other members of el's assembly by product
func (g *Grouper) complementTable(el *model.Element) []model.Complement {
	type acc struct {
		count  int
		volume float64
	}
	index := make(map[string]*acc)
	var names []string
	for _, m := range g.otherMembers(el) {
		vol, ok := g.memberVolume(el, m)
		if !ok {
			continue
		}
		if g.res.Resolve(m, model.FieldConcreteClass) == "" {
			continue
		}
		product := g.res.Resolve(m, model.FieldProduct)
		if product == "" {
			continue
		}
		a, ok := index[product]
		if !ok {
			a = &acc{}
			index[product] = a
			names = append(names, product)
		}
		a.count++
		a.volume += vol
	}
	out := make([]model.Complement, 0, len(names))
	for _, name := range names {
		a := index[name]
		avg := a.volume / float64(a.count)
		out = append(out, model.Complement{
			Kind:     complementKind,
			Name:     name,
			Quantity: a.count,
			Volume:   avg,
			Weight:   avg * g.spec.Derive.Density,
		})
	}
	return out
}
