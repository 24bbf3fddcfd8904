package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const resultPrefix = "results"

// NewS3Client builds a path-style client from the AWS_* environment.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(util.GetEnvString("AWS_REGION", "us-east-1")),
		config.WithBaseEndpoint(util.GetEnv("AWS_ENDPOINT")),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			util.GetEnv("AWS_ACCESS_KEY"),
			util.GetEnv("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client, nil
}

// ResultStore keeps analysis results as JSON objects in a bucket.
type ResultStore struct {
	client         *s3.Client
	bucket         string
	publicEndpoint string
	linkExpiry     time.Duration
}

// NewResultStoreParams configures a ResultStore. PublicEndpoint, when set,
// is the externally reachable base URL used for download links.
type NewResultStoreParams struct {
	Client         *s3.Client
	Bucket         string
	PublicEndpoint string
	LinkExpiry     time.Duration
}

func NewResultStore(params NewResultStoreParams) *ResultStore {
	expiry := params.LinkExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &ResultStore{
		client:         params.Client,
		bucket:         params.Bucket,
		publicEndpoint: params.PublicEndpoint,
		linkExpiry:     expiry,
	}
}

// ResultKey returns the object key of the result with the given id.
func ResultKey(id string) string {
	return fmt.Sprintf("%s/%s.json", resultPrefix, id)
}

// PutResult uploads result and returns its key.
func (s *ResultStore) PutResult(ctx context.Context, result *common.Result) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	key := ResultKey(result.ID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload result to S3: %w", err)
	}

	return key, nil
}

// GetResult downloads and decodes the result stored under key.
func (s *ResultStore) GetResult(ctx context.Context, key string) (*common.Result, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get result from S3: %w", err)
	}
	defer out.Body.Close()

	var result common.Result
	if err := json.NewDecoder(out.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return &result, nil
}

// DownloadLink presigns a GET for key.
func (s *ResultStore) DownloadLink(ctx context.Context, key string) (string, error) {
	client := s.client
	prefix := ""

	if s.publicEndpoint != "" {
		publicURL, err := url.Parse(s.publicEndpoint)
		if err != nil || publicURL.Scheme == "" || publicURL.Host == "" {
			return "", fmt.Errorf("invalid public endpoint: %s", s.publicEndpoint)
		}
		prefix = strings.TrimSuffix(publicURL.Path, "/")

		// Sign against the public host so the signature matches the Host
		// header the client will send.
		client = s3.NewFromConfig(
			aws.Config{
				Region:      s.client.Options().Region,
				Credentials: s.client.Options().Credentials,
				HTTPClient:  s.client.Options().HTTPClient,
			},
			func(o *s3.Options) {
				o.BaseEndpoint = aws.String(fmt.Sprintf("%s://%s", publicURL.Scheme, publicURL.Host))
				o.UsePathStyle = true
			},
		)
	}

	out, err := s3.NewPresignClient(client).PresignGetObject(
		ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(s.linkExpiry),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate download link: %w", err)
	}

	if prefix == "" {
		return out.URL, nil
	}
	signedURL, err := url.Parse(out.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse presigned url: %w", err)
	}
	signedURL.Path = prefix + signedURL.Path
	return signedURL.String(), nil
}
