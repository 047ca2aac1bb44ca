package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/imamik/valheimctl/internal/util/naming"
)

// MaxInlineTemplateBytes is the largest template body CloudFormation takes
// inline.
const MaxInlineTemplateBytes = 51200

// Client wraps the S3 client.
type Client struct {
	s3       *s3.Client
	region   string
	endpoint string
}

// NewClient creates a client for the region (and optional endpoint) in cfg.
func NewClient(cfg aws.Config) *Client {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// Custom endpoints (LocalStack, MinIO) rarely resolve bucket
		// subdomains.
		o.UsePathStyle = cfg.BaseEndpoint != nil
	})
	return &Client{s3: client, region: cfg.Region, endpoint: aws.ToString(cfg.BaseEndpoint)}
}

// NeedsStaging reports whether body is too large to pass inline.
func NeedsStaging(body []byte) bool {
	return len(body) > MaxInlineTemplateBytes
}

// StageTemplate uploads body under a content-addressed key and returns the
// URL to hand to CloudFormation. The bucket is created when missing.
func (c *Client) StageTemplate(ctx context.Context, bucketName, stackName string, body []byte) (string, error) {
	if err := c.CreateBucket(ctx, bucketName); err != nil {
		return "", err
	}

	key := TemplateKey(stackName, body)
	if err := c.PutObject(ctx, bucketName, key, body); err != nil {
		return "", err
	}
	return c.ObjectURL(bucketName, key), nil
}

// TemplateKey returns the object key for a template of stackName.
func TemplateKey(stackName string, body []byte) string {
	sum := sha256.Sum256(body)
	return naming.TemplateObjectKey(stackName, hex.EncodeToString(sum[:8]))
}

// ObjectURL returns the HTTPS URL of key in bucketName.
func (c *Client) ObjectURL(bucketName, key string) string {
	if c.endpoint != "" {
		return strings.TrimSuffix(c.endpoint, "/") + "/" + bucketName + "/" + (&url.URL{Path: key}).EscapedPath()
	}
	return naming.TemplateURL(bucketName, c.region, (&url.URL{Path: key}).EscapedPath())
}

// CreateBucket creates a new S3 bucket in the client's region.
// Returns nil if the bucket already exists and is owned by us.
func (c *Client) CreateBucket(ctx context.Context, bucketName string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucketName)}
	// us-east-1 rejects an explicit location constraint.
	if c.region != "" && c.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	if _, err := c.s3.CreateBucket(ctx, input); err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	return nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucketName)})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// PutObject uploads an object to a bucket.
func (c *Client) PutObject(ctx context.Context, bucketName, key string, data []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s in bucket %s: %w", key, bucketName, err)
	}
	return nil
}

// DeleteObject deletes an object from a bucket. Missing objects are not an
// error.
func (c *Client) DeleteObject(ctx context.Context, bucketName, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", key, bucketName, err)
	}
	return nil
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
	}
	return false
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket", "NoSuchKey", "404":
			return true
		}
	}
	return false
}
