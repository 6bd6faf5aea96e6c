package images

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	crd "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-pkgz/lgr"
)

// S3Config defines the bucket images are uploaded to
type S3Config struct {
	AccessKey    string
	SecretKey    string
	Region       string
	BaseEndpoint string
	Bucket       string
	KeyPrefix    string
	PublicURL    string
	PathStyle    bool
}

// S3Store uploads images to an S3 compatible bucket
type S3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store makes an S3Store with static credentials
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(crd.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	if cfg.BaseEndpoint != "" {
		opts = append(opts, awsCfg.WithBaseEndpoint(cfg.BaseEndpoint))
	}

	awsConfig, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	// minio and localstack need path style addressing
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
	})
	lgr.Printf("[INFO] s3 image store, bucket %s, region %s", cfg.Bucket, cfg.Region)
	return &S3Store{client: client, cfg: cfg}, nil
}

// Save uploads data as <prefix>/<domain>/<uuid><ext> and returns its public URL
func (s *S3Store) Save(ctx context.Context, domain, sourceURL string, data []byte) (string, error) {
	key := path.Join(s.cfg.KeyPrefix, domain, FileName(sourceURL, data))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("put image %s: %w", key, err)
	}

	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}
