// Package setup builds the analysis pipeline and text loaders from the
// process environment. The server, the worker and the CLI share it.
package setup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/analysis"
	"github.com/OFFIS-RIT/plotline/pkg/loader"
	ioloader "github.com/OFFIS-RIT/plotline/pkg/loader/io"
	s3loader "github.com/OFFIS-RIT/plotline/pkg/loader/s3"
	"github.com/OFFIS-RIT/plotline/pkg/loader/web"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/ner"
	"github.com/OFFIS-RIT/plotline/pkg/tokenize"
)

// NER model backends selectable through NER_MODEL.
const (
	ModelGazetteer = "gazetteer"
	ModelRemote    = "remote"
)

// Overrides replaces environment values. Zero fields keep the environment.
type Overrides struct {
	TopN      int
	ChunkSize int
	Parts     int
}

// Tokenizer loads TOKENIZER_DICT_PATH, or the built-in dictionary when unset.
func Tokenizer() (*tokenize.Tokenizer, error) {
	path := util.GetEnv("TOKENIZER_DICT_PATH")
	if path == "" {
		return tokenize.New(nil), nil
	}
	dict, err := tokenize.LoadDictionaryFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer dictionary: %w", err)
	}
	logger.Info("[Setup] Loaded tokenizer dictionary", "path", path, "words", dict.Len())
	return tokenize.New(dict), nil
}

// ModelCache selects the NER backend. The model itself loads lazily on the
// first extraction.
func ModelCache(base *tokenize.Dictionary) (*ner.ModelCache, error) {
	switch kind := strings.ToLower(util.GetEnvString("NER_MODEL", ModelGazetteer)); kind {
	case ModelGazetteer:
		return ner.NewModelCache(ner.GazetteerLoader(util.GetEnv("NER_MODEL_PATH"), base)), nil
	case ModelRemote:
		return ner.NewModelCache(ner.RemoteLoader(ner.NewRemoteModelParams{
			URL:        util.GetEnv("NER_REMOTE_URL"),
			Timeout:    time.Duration(util.GetEnvInt("NER_REMOTE_TIMEOUT_SECONDS", 60)) * time.Second,
			MaxRetries: util.GetEnvInt("NER_REMOTE_MAX_RETRIES", 3),
		})), nil
	default:
		return nil, fmt.Errorf("unknown NER_MODEL %q", kind)
	}
}

// Analyzer wires tokenizer, extractor and graph settings from the
// environment.
func Analyzer(o Overrides) (*analysis.Analyzer, error) {
	tok, err := Tokenizer()
	if err != nil {
		return nil, err
	}
	models, err := ModelCache(tok.Dictionary())
	if err != nil {
		return nil, err
	}

	params := analysis.NewAnalyzerParams{
		Tokenizer: tok,
		Extractor: ner.NewExtractor(ner.NewExtractorParams{
			Models:   models,
			MaxChars: util.GetEnvInt("NER_MAX_CHARS", ner.DefaultMaxChars),
		}),
		TopN:      util.GetEnvInt("GRAPH_TOP_N", 0),
		ChunkSize: util.GetEnvInt("SENTIMENT_CHUNK_SIZE", 0),
		Parts:     util.GetEnvInt("SENTIMENT_PARTS", 0),
	}
	if o.TopN != 0 {
		params.TopN = o.TopN
	}
	if o.ChunkSize != 0 {
		params.ChunkSize = o.ChunkSize
	}
	if o.Parts != 0 {
		params.Parts = o.Parts
	}

	return analysis.NewAnalyzer(params), nil
}

// Loaders registers the filesystem and web loaders, plus S3 when
// AWS_BUCKET is set. withFiles is false for network-facing processes.
func Loaders(ctx context.Context, withFiles bool) (loader.Registry, error) {
	maxBytes := int64(util.GetEnvInt("MAX_TEXT_BYTES", 0))

	reg := loader.Registry{
		loader.SourceTypeWeb: web.NewWebTextLoader(web.NewWebTextLoaderParams{
			Timeout: time.Duration(util.GetEnvInt("WEB_TIMEOUT_SECONDS", 30)) * time.Second,
		}),
	}
	if withFiles {
		reg[loader.SourceTypeFile] = ioloader.NewIOTextLoader(ioloader.NewIOTextLoaderParams{MaxBytes: maxBytes})
	}

	if bucket := util.GetEnv("AWS_BUCKET"); bucket != "" {
		l, err := s3loader.NewS3TextLoader(ctx, s3loader.NewS3TextLoaderParams{
			Bucket:       bucket,
			Endpoint:     util.GetEnv("AWS_ENDPOINT"),
			Region:       util.GetEnvString("AWS_REGION", "us-east-1"),
			AccessKey:    util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey:    util.GetEnv("AWS_SECRET_KEY"),
			UsePathStyle: true,
		})
		if err != nil {
			return nil, err
		}
		reg[loader.SourceTypeS3] = l
	}

	return reg, nil
}
