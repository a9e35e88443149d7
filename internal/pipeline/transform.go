package pipeline

import (
	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

// RecordBuilder turns aggregates into export records
type RecordBuilder struct {
	spec *model.ExportSpec
	res  *Resolver
}

// NewRecordBuilder creates a builder
func NewRecordBuilder(spec *model.ExportSpec, res *Resolver) *RecordBuilder {
	return &RecordBuilder{spec: spec, res: res}
}

// average returns the averaged sum of f, in metres for dimension fields
func (b *RecordBuilder) average(agg *Aggregate, f model.Field) float64 {
	n := float64(agg.Count)
	switch f {
	case model.FieldLength:
		return agg.Sums.Length / n / b.spec.Derive.LengthDivisor
	case model.FieldHeight:
		return agg.Sums.Height / n / b.spec.Derive.SectionDivisor
	case model.FieldWidth:
		return agg.Sums.Width / n / b.spec.Derive.SectionDivisor
	case model.FieldVolume:
		return agg.Sums.Volume / n
	case model.FieldWeight:
		return agg.Sums.Weight / n
	case model.FieldArea:
		return agg.Sums.Area / n
	}
	return 0
}

// Build produces the record of one group
func (b *RecordBuilder) Build(agg *Aggregate) model.PieceRecord {
	base := agg.Base
	variant := variantFor(base.Category)

	length := b.average(agg, variant.lengthSource)
	height := b.average(agg, variant.heightSource)
	width := b.average(agg, model.FieldWidth)
	volume := b.average(agg, model.FieldVolume)

	weight := b.average(agg, model.FieldWeight)
	if b.spec.Derive.Weight == model.StrategyDerived {
		weight = volume * b.spec.Derive.Density
	}
	area := b.average(agg, model.FieldArea)
	if b.spec.Derive.Area == model.StrategyDerived {
		// section area, unaffected by the column swap
		area = b.average(agg, model.FieldHeight) * width
	}

	ids := make([]string, len(agg.IDs))
	copy(ids, agg.IDs)

	return model.PieceRecord{
		Name:          b.res.DisplayName(base),
		ControlCode:   b.res.Resolve(base, model.FieldControlCode),
		Drawing:       b.res.Resolve(base, model.FieldDrawing),
		Product:       b.res.Resolve(base, model.FieldProduct),
		Group:         b.res.Resolve(base, model.FieldGroup),
		Section:       b.res.Resolve(base, model.FieldSection),
		Info:          b.res.Resolve(base, model.FieldInfo),
		Quantity:      agg.Count,
		Length:        utils.Fixed3(length),
		Height:        utils.Fixed3(height),
		Width:         utils.Fixed3(width),
		Volume:        utils.Fixed3(volume),
		Weight:        utils.Fixed3(weight),
		Area:          utils.Fixed3(area),
		ConcreteClass: b.res.Resolve(base, model.FieldConcreteClass),
		Finish:        b.res.Resolve(base, model.FieldFinish),
		Cover:         b.res.Resolve(base, model.FieldCover),
		Notes:         b.res.Resolve(base, model.FieldNotes),
		IDs:           ids,
		Rebar:         agg.Rebar,
		Complements:   agg.Complements,
	}
}

// BuildRecords builds every group and orders the result naturally by name
func (b *RecordBuilder) BuildRecords(groups []*Aggregate) []model.PieceRecord {
	out := make([]model.PieceRecord, 0, len(groups))
	for _, agg := range groups {
		out = append(out, b.Build(agg))
	}
	SortPieces(out)
	return out
}
