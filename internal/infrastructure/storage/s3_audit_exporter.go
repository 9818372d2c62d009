package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const ndjsonContentType = "application/x-ndjson"

// S3AuditExporter uploads audit exports to a single bucket.
type S3AuditExporter struct {
	client *s3.Client
	bucket string
}

// NewS3AuditExporter builds a client for bucket. endpoint is optional (MinIO, localstack) and
// switches to path-style addressing.
func NewS3AuditExporter(ctx context.Context, bucket, region, endpoint string) (*S3AuditExporter, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3AuditExporter{client: client, bucket: bucket}, nil
}

func AuditExportKey(flowID string) string {
	return "audit/" + flowID + ".ndjson"
}

// Upload stores body under audit/<flowID>.ndjson and returns the object key. A later export of
// the same flow overwrites the previous one, which is always a prefix of the new stream.
func (e *S3AuditExporter) Upload(ctx context.Context, flowID string, body io.Reader) (string, error) {
	key := AuditExportKey(flowID)
	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(ndjsonContentType),
		Metadata:    map[string]string{"flow-id": flowID},
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
