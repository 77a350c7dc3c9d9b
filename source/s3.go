package source

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/vtree"
)

// S3SourceConfig contains configuration options for the S3 source
type S3SourceConfig struct {
	// Endpoint of the S3 compatible server (e.g. "localhost:9000")
	Endpoint string

	AccessKey string
	SecretKey string

	// Bucket to list (required)
	Bucket string

	// Prefix limits the listing and is removed from every key (optional)
	Prefix string

	UseSSL bool
}

// S3Source lists the objects of a bucket. Keys are split on "/" and
// keys ending in "/" become folders.
type S3Source struct {
	client *minio.Client
	config *S3SourceConfig
}

func NewS3Source(config *S3SourceConfig) (*S3Source, error) {
	if config == nil || config.Endpoint == "" || config.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 source requires an endpoint and a bucket", vtree.ErrInvalidOption)
	}

	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &S3Source{
		client: client,
		config: config,
	}, nil
}

// Name returns the identifier name defined for this source
func (*S3Source) Name() string {
	return "s3"
}

// Load lists every object below the configured prefix and returns them as a new Content.
func (ss *S3Source) Load(ctx context.Context, opts ...vtree.ContentOption) (*vtree.Content, error) {
	exists, err := ss.client.BucketExists(ctx, ss.config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: bucket '%s' does not exist", ErrSourceUnavailable, ss.config.Bucket)
	}

	var keys []string
	for obj := range ss.client.ListObjects(ctx, ss.config.Bucket, minio.ListObjectsOptions{
		Prefix:    ss.config.Prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}

	b := NewBuilder()
	if err := addKeys(b, ss.config.Prefix, keys); err != nil {
		return nil, err
	}

	return b.Content(opts...)
}
