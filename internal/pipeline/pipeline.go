package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/utils"
)

// ErrUnsavedHost is returned when the model has never been saved and no
// output directory is configured.
var ErrUnsavedHost = errors.New("model is not saved, no output directory")

// Stage names reported by the tracker
const (
	StageResolve   = "resolve"
	StageFilter    = "filter"
	StageValidate  = "validate"
	StageAggregate = "aggregate"
	StageBuild     = "build"
	StageExport    = "export"
)

// Pipeline runs one export over a host model
type Pipeline struct {
	Host    model.Host
	Spec    *model.ExportSpec
	Log     *logger.Logger
	Tracker *RunTracker

	res *Resolver
	ser *Serializer
}

// New wires a pipeline for runID
func New(host model.Host, spec *model.ExportSpec, log *logger.Logger, runID string) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("run_id", runID)
	tracker := NewRunTracker(runID, log)
	return &Pipeline{
		Host:    host,
		Spec:    spec,
		Log:     log,
		Tracker: tracker,
		res:     NewResolver(host, spec, log, tracker),
		ser:     NewSerializer(log, tracker),
	}
}

// Resolver exposes the field resolver of this run
func (p *Pipeline) Resolver() *Resolver {
	return p.res
}

// Prepare resolves, filters and validates the selection
func (p *Pipeline) Prepare() ([]*model.Element, error) {
	p.Tracker.StartStage(StageResolve, len(p.Host.Selection()))
	elements, err := ResolveSelection(p.Host, p.Log)
	p.Tracker.EndStage(len(elements))
	if err != nil {
		return nil, err
	}

	p.Tracker.StartStage(StageFilter, len(elements))
	elements = FilterCategories(elements, p.Log)
	p.Tracker.EndStage(len(elements))
	if len(elements) == 0 {
		p.Log.Warn("no selected element belongs to an exported category")
		return nil, ErrNoValidElements
	}

	p.Tracker.StartStage(StageValidate, len(elements))
	elements = ValidateRequired(elements, p.res, p.Log)
	p.Tracker.EndStage(len(elements))
	if len(elements) == 0 {
		p.Log.Warn("no element carries every mandatory parameter")
		return nil, ErrNoValidElements
	}
	return elements, nil
}

// OutputDir returns the configured directory or the directory of the saved model
func (p *Pipeline) OutputDir() (string, error) {
	if p.Spec.Output.Dir != "" {
		return p.Spec.Output.Dir, nil
	}
	dir, err := utils.DirFromModelPath(p.Host.DocumentPath())
	if err != nil {
		return "", ErrUnsavedHost
	}
	return dir, nil
}

// Document aggregates elements and builds the ordered document
func (p *Pipeline) Document(elements []*model.Element) model.Document {
	p.Tracker.StartStage(StageAggregate, len(elements))
	groups := GroupElements(elements, p.Host, p.Spec, p.res, p.Log, p.Tracker)
	p.Tracker.EndStage(len(groups))
	p.Tracker.Summary.Groups = len(groups)

	p.Tracker.StartStage(StageBuild, len(groups))
	records := NewRecordBuilder(p.Spec, p.res).BuildRecords(groups)
	p.Tracker.EndStage(len(records))

	return model.Document{Envelope: p.Spec.Envelope, Pieces: records}
}

// Run executes every stage and writes the document.
// Guard failures return ErrEmptySelection, ErrNoValidElements or ErrUnsavedHost
// and leave no file behind.
func (p *Pipeline) Run(now time.Time) (model.RunSummary, error) {
	p.Log.Info("starting export", "selected", len(p.Host.Selection()))

	elements, err := p.Prepare()
	if err != nil {
		return p.Tracker.Complete("aborted", nil), err
	}
	dir, err := p.OutputDir()
	if err != nil {
		return p.Tracker.Complete("aborted", nil), err
	}

	doc := p.Document(elements)

	p.Tracker.StartStage(StageExport, len(doc.Pieces))
	result, err := p.ser.WriteDocument(doc, dir, p.Spec.Output.Prefix, now)
	p.Tracker.EndStage(result.RecordCount)
	if err != nil {
		return p.Tracker.Complete("failed", &result), fmt.Errorf("write export: %w", err)
	}
	p.Log.Info("export written", "path", result.Path, "pieces", result.RecordCount, "bytes", result.Bytes)
	return p.Tracker.Complete("completed", &result), nil
}

// Run is a shorthand for New(...).Run(time.Now())
func Run(host model.Host, spec *model.ExportSpec, log *logger.Logger, runID string) (model.RunSummary, error) {
	return New(host, spec, log, runID).Run(time.Now())
}
