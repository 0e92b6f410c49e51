package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ANIKETSHETTY47/wire-sizing-engine/internal/domain"
)

const presignExpiry = time.Hour

type s3API interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Client stores calculation reports in a bucket.
type S3Client struct {
	svc     s3API
	presign presignAPI
	bucket  string
}

func NewS3Client(cfg aws.Config, bucket string) *S3Client {
	svc := s3.NewFromConfig(cfg)
	return &S3Client{svc: svc, presign: s3.NewPresignClient(svc), bucket: bucket}
}

// UploadReport uploads a report and returns a presigned download URL.
func (c *S3Client) UploadReport(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
		},
	}
	if _, err := c.svc.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	presigned, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return presigned.URL, nil
}

// ReportKey is where a calculation's report lives in the bucket.
func ReportKey(c domain.Calculation) string {
	return fmt.Sprintf("reports/%s/%s/%s.json", c.CreatedAt.UTC().Format("2006/01/02"), c.Kind, c.ID)
}

// ExportCalculation writes the stored calculation as an indented JSON report.
func (c *S3Client) ExportCalculation(ctx context.Context, calc domain.Calculation) (string, error) {
	body, err := json.MarshalIndent(calc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	return c.UploadReport(ctx, ReportKey(calc), body, "application/json")
}

// ListReports lists report keys under prefix, following pagination.
func (c *S3Client) ListReports(ctx context.Context, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(prefix),
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(c.svc, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}
