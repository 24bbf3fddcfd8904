package queue

import (
	"github.com/OFFIS-RIT/plotline/pkg/common"
)

// AnalyzeMsg is a job on AnalyzeQueue. At most one of Text, URL or S3Key
// names the document; none means an empty document.
type AnalyzeMsg struct {
	JobID      string   `json:"job_id"`
	Text       string   `json:"text,omitempty"`
	URL        string   `json:"url,omitempty"`
	S3Key      string   `json:"s3_key,omitempty"`
	Characters []string `json:"characters,omitempty"`
}

// Job result states.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// AnalysisResultMsg is published on AnalysisTopic(JobID) once a job is
// done.
type AnalysisResultMsg struct {
	JobID     string         `json:"job_id"`
	Status    string         `json:"status"`
	Result    *common.Result `json:"result,omitempty"`
	ResultKey string         `json:"result_key,omitempty"`
	ResultURL string         `json:"result_url,omitempty"`
	Error     string         `json:"error,omitempty"`
}
