package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/plotline/pkg/analysis"
	"github.com/OFFIS-RIT/plotline/pkg/common"
	"github.com/OFFIS-RIT/plotline/pkg/loader"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/kaptinlin/jsonrepair"
)

// ErrInvalidMessage marks messages that can never succeed. They skip the
// retry queue.
var ErrInvalidMessage = errors.New("invalid analyze message")

// ResultStore persists finished results outside the broker.
type ResultStore interface {
	PutResult(ctx context.Context, result *common.Result) (string, error)
	DownloadLink(ctx context.Context, key string) (string, error)
}

// Processor turns AnalyzeMsg jobs into published AnalysisResultMsg
// messages.
type Processor struct {
	analyzer *analysis.Analyzer
	loaders  loader.Registry
	store    ResultStore
	ch       Channel
}

// NewProcessorParams configures a Processor. Store is optional; without it
// results travel inline in the published message only.
type NewProcessorParams struct {
	Analyzer *analysis.Analyzer
	Loaders  loader.Registry
	Store    ResultStore
	Channel  Channel
}

func NewProcessor(params NewProcessorParams) *Processor {
	return &Processor{
		analyzer: params.Analyzer,
		loaders:  params.Loaders,
		store:    params.Store,
		ch:       params.Channel,
	}
}

// DecodeAnalyzeMsg parses and validates a job. Slightly malformed JSON is
// repaired before giving up.
func DecodeAnalyzeMsg(body []byte) (AnalyzeMsg, error) {
	var msg AnalyzeMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(body))
		if repairErr != nil {
			return msg, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		if err := json.Unmarshal([]byte(repaired), &msg); err != nil {
			return msg, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
	}

	if strings.TrimSpace(msg.JobID) == "" {
		return msg, fmt.Errorf("%w: missing job_id", ErrInvalidMessage)
	}
	sources := 0
	for _, s := range []string{msg.Text, msg.URL, msg.S3Key} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return msg, fmt.Errorf("%w: more than one text source", ErrInvalidMessage)
	}

	return msg, nil
}

// LoadText resolves the document of msg. A job without any source
// analyzes the empty text.
func LoadText(ctx context.Context, loaders loader.Registry, msg AnalyzeMsg) (string, error) {
	var (
		sourceType loader.SourceType
		path       string
	)
	switch {
	case msg.URL != "":
		sourceType, path = loader.SourceTypeWeb, msg.URL
	case msg.S3Key != "":
		sourceType, path = loader.SourceTypeS3, msg.S3Key
	default:
		return loader.DecodeText([]byte(msg.Text))
	}

	file, err := loaders.File(msg.JobID, sourceType, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	text, err := file.GetText(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load %s source: %w", sourceType, err)
	}
	return text, nil
}

// Handle runs one job and returns the message to publish.
func (p *Processor) Handle(ctx context.Context, body []byte) (*AnalysisResultMsg, error) {
	msg, err := DecodeAnalyzeMsg(body)
	if err != nil {
		return nil, err
	}

	text, err := LoadText(ctx, p.loaders, msg)
	if err != nil {
		return nil, err
	}

	result, err := p.analyzer.Analyze(ctx, text, msg.Characters)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze job %s: %w", msg.JobID, err)
	}
	result.ID = msg.JobID

	out := &AnalysisResultMsg{
		JobID:  msg.JobID,
		Status: StatusCompleted,
		Result: result,
	}

	if p.store != nil {
		key, err := p.store.PutResult(ctx, result)
		if err != nil {
			return nil, fmt.Errorf("failed to store result: %w", err)
		}
		out.ResultKey = key
		link, err := p.store.DownloadLink(ctx, key)
		if err != nil {
			logger.Warn("[Queue] Failed to create result link", "job_id", msg.JobID, "err", err)
		} else {
			out.ResultURL = link
		}
	}

	return out, nil
}

// Process handles body and publishes the outcome. Invalid jobs are
// answered with a failed status when their id is known.
func (p *Processor) Process(ctx context.Context, body []byte) error {
	out, err := p.Handle(ctx, body)
	if err != nil {
		if errors.Is(err, ErrInvalidMessage) {
			p.PublishFailure(ctx, body, err)
		}
		return err
	}

	if err := p.publish(ctx, out); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}
	logger.Info("[Queue] Published analysis", "job_id", out.JobID, "topic", AnalysisTopic(out.JobID))
	return nil
}

// PublishFailure announces a job that was given up on.
func (p *Processor) PublishFailure(ctx context.Context, body []byte, cause error) {
	msg, _ := DecodeAnalyzeMsg(body)
	if msg.JobID == "" {
		return
	}
	_ = p.publish(ctx, &AnalysisResultMsg{JobID: msg.JobID, Status: StatusFailed, Error: cause.Error()})
}

func (p *Processor) publish(ctx context.Context, out *AnalysisResultMsg) error {
	if p.ch == nil {
		return nil
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if err := PublishTopic(ctx, p.ch, AnalysisTopic(out.JobID), data); err != nil {
		logger.Error("[Queue] Failed to publish", "job_id", out.JobID, "err", err)
		return err
	}
	return nil
}
