package pipeline

import (
	"errors"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

// ErrEmptySelection is returned when the selection resolves to no element
var ErrEmptySelection = errors.New("selection is empty")

// principalPriority is the order in which an assembly's members are searched
// for the piece that represents it.
var principalPriority = []model.Category{
	model.CategoryColumn,
	model.CategoryFraming,
	model.CategoryFoundation,
	model.CategoryWall,
	model.CategoryFloor,
}

// PrincipalMember returns the structural member standing for an assembly
func PrincipalMember(host model.Host, asm *model.Element) (*model.Element, bool) {
	members := make([]*model.Element, 0, len(asm.Members))
	for _, id := range asm.Members {
		if m, ok := host.Element(id); ok {
			members = append(members, m)
		}
	}
	for _, cat := range principalPriority {
		for _, m := range members {
			if m.Category == cat {
				return m, true
			}
		}
	}
	return nil, false
}

// ResolveSelection turns the host selection into exportable elements.
// Assemblies are replaced by their principal member and duplicates by unique id
// are dropped, keeping the first occurrence.
func ResolveSelection(host model.Host, log *logger.Logger) ([]*model.Element, error) {
	seen := make(map[string]bool)
	var out []*model.Element
	for _, id := range host.Selection() {
		el, ok := host.Element(id)
		if !ok {
			log.Warn("selected element not found in model", "element_id", id)
			continue
		}
		if el.IsAssembly() {
			principal, ok := PrincipalMember(host, el)
			if !ok {
				log.Warn("assembly has no structural member and was not exported",
					"assembly_id", el.ID, "unique_id", el.UniqueID)
				continue
			}
			el = principal
		}
		if seen[el.UniqueID] {
			continue
		}
		seen[el.UniqueID] = true
		out = append(out, el)
	}
	if len(out) == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}
