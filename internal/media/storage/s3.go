package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	mediaerrors "staybook/internal/media/errors"
	"staybook/pkg/sanitizer"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PresignExpiry   time.Duration
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store keeps media in a bucket and serves it through short-lived
// presigned GET redirects.
type S3Store struct {
	client    objectPutter
	presigner objectPresigner
	bucket    string
	expiry    time.Duration
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		expiry:    cfg.PresignExpiry,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name string, body io.ReadSeeker, size int64, contentType string) error {
	if clean := sanitizer.MediaRef(name); clean == "" || clean != name {
		return fmt.Errorf("%w: %q", mediaerrors.ErrInvalidName, name)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s to bucket %s: %w", name, s.bucket, err)
	}
	return nil
}

func (s *S3Store) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	if clean := sanitizer.MediaRef(name); clean == "" || clean != name {
		return mediaerrors.ErrNotFound
	}

	req, err := s.presigner.PresignGetObject(r.Context(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return fmt.Errorf("failed to presign %s: %w", name, err)
	}

	http.Redirect(w, r, req.URL, http.StatusFound)
	return nil
}
