package pipeline

import (
	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

// GroupKey identifies repetitions of the same fabricated piece
type GroupKey struct {
	Name    string
	Product string
	Group   string
	Section string
	Info    string
}

// Sums holds running totals of the numeric fields of a group
type Sums struct {
	Length float64
	Height float64
	Width  float64
	Volume float64
	Weight float64
	Area   float64
}

func (s *Sums) add(o Sums) {
	s.Length += o.Length
	s.Height += o.Height
	s.Width += o.Width
	s.Volume += o.Volume
	s.Weight += o.Weight
	s.Area += o.Area
}

// Aggregate is one group of identical pieces
type Aggregate struct {
	Key         GroupKey
	Base        *model.Element
	Count       int
	IDs         []string
	Sums        Sums
	Rebar       []model.RebarPosition
	Complements []model.Complement
}

// Merge folds other into a; both must share the same key
func (a *Aggregate) Merge(other *Aggregate) {
	a.Count += other.Count
	a.IDs = append(a.IDs, other.IDs...)
	a.Sums.add(other.Sums)
}

// Grouper accumulates validated elements into aggregates
type Grouper struct {
	host    model.Host
	spec    *model.ExportSpec
	res     *Resolver
	log     *logger.Logger
	tracker *RunTracker
	groups  map[GroupKey]*Aggregate
	order   []*Aggregate
}

// NewGrouper creates an empty grouper
func NewGrouper(host model.Host, spec *model.ExportSpec, res *Resolver, log *logger.Logger, tracker *RunTracker) *Grouper {
	if log == nil {
		log = logger.Nop()
	}
	return &Grouper{
		host:    host,
		spec:    spec,
		res:     res,
		log:     log,
		tracker: tracker,
		groups:  make(map[GroupKey]*Aggregate),
	}
}

// KeyOf computes the group key of el
func (g *Grouper) KeyOf(el *model.Element) GroupKey {
	return GroupKey{
		Name:    g.res.DisplayName(el),
		Product: g.res.Resolve(el, model.FieldProduct),
		Group:   g.res.Resolve(el, model.FieldGroup),
		Section: g.res.Resolve(el, model.FieldSection),
		Info:    g.res.Resolve(el, model.FieldInfo),
	}
}

// Add assigns el to its group, seeding a new one when the key is unseen
func (g *Grouper) Add(el *model.Element) {
	key := g.KeyOf(el)
	contribution := &Aggregate{
		Key:   key,
		Base:  el,
		Count: 1,
		IDs:   []string{el.UniqueID},
		Sums:  g.measure(el),
	}
	if agg, ok := g.groups[key]; ok {
		agg.Merge(contribution)
		return
	}
	if g.spec.Features.SubTables {
		contribution.Rebar = g.rebarTable(el)
		contribution.Complements = g.complementTable(el)
	}
	g.groups[key] = contribution
	g.order = append(g.order, contribution)
}

// Groups returns the aggregates in encounter order
func (g *Grouper) Groups() []*Aggregate {
	return g.order
}

func (g *Grouper) measure(el *model.Element) Sums {
	s := Sums{
		Length: g.res.Number(el, model.FieldLength),
		Height: g.res.Number(el, model.FieldHeight),
		Width:  g.res.Number(el, model.FieldWidth),
		Volume: g.res.Number(el, model.FieldVolume),
		Weight: g.res.Number(el, model.FieldWeight),
		Area:   g.res.Number(el, model.FieldArea),
	}
	if g.spec.Features.AssemblyRollup {
		s.Volume += g.companionVolume(el)
	}
	return s
}

// GroupElements partitions elements by group key
func GroupElements(elements []*model.Element, host model.Host, spec *model.ExportSpec, res *Resolver, log *logger.Logger, tracker *RunTracker) []*Aggregate {
	g := NewGrouper(host, spec, res, log, tracker)
	for _, el := range elements {
		g.Add(el)
	}
	return g.Groups()
}
