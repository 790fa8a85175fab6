package sheetFs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Source reads sheets straight from an S3 bucket. Every key is resolved
// under Prefix.
type S3Source struct {
	Bucket string
	Prefix string
	client s3iface.S3API
}

// NewS3Source builds a client from the AWS_* environment variables.
func NewS3Source(bucket, prefix string) (*S3Source, error) {
	if bucket == "" {
		return nil, errors.New("missing S3 bucket (set S3_BUCKET)")
	}

	// Load credentials and region from environment variables
	region := os.Getenv("AWS_DEFAULT_REGION")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")

	if region == "" || accessKey == "" || secretKey == "" {
		return nil, errors.New("missing one or more required environment variables: AWS_DEFAULT_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, err
	}

	log.Printf("NewS3Source | bucket=%s | prefix=%s | region=%s", bucket, prefix, region)
	return NewS3SourceWithClient(s3.New(sess), bucket, prefix), nil
}

// NewS3SourceWithClient wraps an existing client.
func NewS3SourceWithClient(client s3iface.S3API, bucket, prefix string) *S3Source {
	return &S3Source{Bucket: bucket, Prefix: prefix, client: client}
}

func (s *S3Source) key(key string) string {
	if s.Prefix == "" {
		return key
	}
	return path.Join(s.Prefix, key)
}

// Exists issues a HEAD request. Any error, including access denied, counts
// as missing.
func (s *S3Source) Exists(ctx context.Context, key string) bool {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(key)),
	})
	return err == nil
}

// ReadAll downloads the object body into memory.
func (s *S3Source) ReadAll(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrNotFound, s.Bucket, s.key(key))
		}
		return nil, err
	}
	defer result.Body.Close()

	return io.ReadAll(result.Body)
}

func (s *S3Source) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Prefix)
}
