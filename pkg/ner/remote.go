package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/logger"

	"github.com/kaptinlin/jsonrepair"
	"github.com/tidwall/gjson"
)

const maxRemoteResponse = 64 << 20

// RemoteModel calls an HTTP tagging service. The service receives
// {"text": "..."} and answers with a JSON array of tuples, either
// [text, tag] or [text, pos, tag]. The array may also be wrapped as
// {"spans": [...]}.
type RemoteModel struct {
	url        string
	client     *http.Client
	maxRetries int
}

// NewRemoteModelParams configures a RemoteModel.
type NewRemoteModelParams struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
	Client     *http.Client
}

// NewRemoteModel creates a RemoteModel. Timeout defaults to 60s and
// MaxRetries to 3.
func NewRemoteModel(params NewRemoteModelParams) *RemoteModel {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	client := params.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	return &RemoteModel{
		url:        params.URL,
		client:     client,
		maxRetries: maxRetries,
	}
}

// RemoteLoader returns a ModelLoader that verifies the service URL once.
func RemoteLoader(params NewRemoteModelParams) ModelLoader {
	return func(ctx context.Context) (Model, error) {
		if strings.TrimSpace(params.URL) == "" {
			return nil, fmt.Errorf("%w: remote tagger url is empty", ErrModelUnavailable)
		}
		logger.Info("[NER] Using remote tagging model", "url", params.URL)
		return NewRemoteModel(params), nil
	}
}

// Tag implements Model.
func (m *RemoteModel) Tag(ctx context.Context, text string) ([]TaggedSpan, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tagging request: %w", err)
	}

	body, err := util.RetryWithContext(ctx, m.maxRetries, func(ctx context.Context) ([]byte, error) {
		return m.post(ctx, payload)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call remote tagger: %w", err)
	}

	return ParseSpans(body)
}

func (m *RemoteModel) post(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponse))
	if err != nil {
		return nil, fmt.Errorf("failed to read tagger response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tagger returned status %d", resp.StatusCode)
	}

	return body, nil
}

// ParseSpans decodes a tagger response. Malformed JSON is repaired first.
// Elements that are not 2- or 3-element arrays become ShapeUnrecognized
// spans rather than errors.
func ParseSpans(body []byte) ([]TaggedSpan, error) {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return []TaggedSpan{}, nil
	}

	if !gjson.Valid(raw) {
		repaired, err := jsonrepair.JSONRepair(raw)
		if err != nil {
			return nil, fmt.Errorf("json repair failed: %w", err)
		}
		raw = repaired
	}

	result := gjson.Parse(raw)
	if spans := result.Get("spans"); result.IsObject() && spans.Exists() {
		result = spans
	}
	if !result.IsArray() {
		return nil, fmt.Errorf("tagger response is not an array")
	}

	items := result.Array()
	out := make([]TaggedSpan, 0, len(items))
	for _, item := range items {
		if !item.IsArray() {
			out = append(out, TaggedSpan{Shape: ShapeUnrecognized})
			continue
		}
		parts := item.Array()
		fields := make([]string, len(parts))
		for i, p := range parts {
			fields[i] = p.String()
		}
		out = append(out, NewTaggedSpan(fields))
	}

	return out, nil
}
