package model

import "time"

// StageMetrics represents metrics for a specific pipeline stage
type StageMetrics struct {
	StageName string        `json:"stage_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	In        int           `json:"in"`
	Out       int           `json:"out"`
	Rejected  int           `json:"rejected"`
}

// RunSummary is the outcome of one export run
type RunSummary struct {
	RunID          string         `json:"run_id"`
	StartTime      time.Time      `json:"start_time"`
	Duration       time.Duration  `json:"duration"`
	Status         string         `json:"status"`
	Stages         []StageMetrics `json:"stages"`
	Groups         int            `json:"groups"`
	MembersSkipped int            `json:"members_skipped"`
	Sanitized      int            `json:"sanitized"`
	Result         *ExportResult  `json:"result,omitempty"`
}
