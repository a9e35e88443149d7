package pipeline

import (
	"time"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"
	"github.com/ViegasWedjat/Revit01-Serpa/pkg/logger"
)

// RunTracker collects stage metrics for one run.
// A nil tracker is valid and records nothing.
type RunTracker struct {
	Summary *model.RunSummary
	log     *logger.Logger
	current *model.StageMetrics
}

// NewRunTracker creates a tracker for runID
func NewRunTracker(runID string, log *logger.Logger) *RunTracker {
	if log == nil {
		log = logger.Nop()
	}
	return &RunTracker{
		log: log,
		Summary: &model.RunSummary{
			RunID:     runID,
			StartTime: time.Now(),
			Status:    "running",
		},
	}
}

// StartStage marks the beginning of a pipeline stage
func (t *RunTracker) StartStage(name string, in int) {
	if t == nil {
		return
	}
	t.current = &model.StageMetrics{StageName: name, StartTime: time.Now(), In: in}
}

// EndStage closes the current stage
func (t *RunTracker) EndStage(out int) {
	if t == nil || t.current == nil {
		return
	}
	st := *t.current
	st.EndTime = time.Now()
	st.Duration = st.EndTime.Sub(st.StartTime)
	st.Out = out
	if st.In > out {
		st.Rejected = st.In - out
	}
	t.Summary.Stages = append(t.Summary.Stages, st)
	t.current = nil
	t.log.Debug("stage completed", "stage", st.StageName, "in", st.In, "out", st.Out, "duration", st.Duration)
}

// MemberSkipped counts an assembly member dropped during roll-up or sub-table build
func (t *RunTracker) MemberSkipped() {
	if t == nil {
		return
	}
	t.Summary.MembersSkipped++
}

// Sanitized counts one stripped character
func (t *RunTracker) Sanitized() {
	if t == nil {
		return
	}
	t.Summary.Sanitized++
}

// Stage returns the metrics of a finished stage
func (t *RunTracker) Stage(name string) (model.StageMetrics, bool) {
	if t == nil {
		return model.StageMetrics{}, false
	}
	for _, st := range t.Summary.Stages {
		if st.StageName == name {
			return st, true
		}
	}
	return model.StageMetrics{}, false
}

// Complete finalises the summary
func (t *RunTracker) Complete(status string, result *model.ExportResult) model.RunSummary {
	if t == nil {
		return model.RunSummary{Status: status, Result: result}
	}
	t.Summary.Status = status
	t.Summary.Duration = time.Since(t.Summary.StartTime)
	t.Summary.Result = result
	t.log.Info("run finished",
		"status", status,
		"groups", t.Summary.Groups,
		"members_skipped", t.Summary.MembersSkipped,
		"sanitized", t.Summary.Sanitized,
		"duration", t.Summary.Duration,
	)
	return *t.Summary
}
