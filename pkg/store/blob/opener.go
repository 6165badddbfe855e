package blob

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/region-atlas/pkg/services/config"
)

const s3Scheme = "s3://"

// Opener resolves a dataset path to its contents.
type Opener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// ObjectGetter is the subset of the S3 API used to fetch datasets.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type opener struct {
	mu       sync.Mutex
	client   ObjectGetter
	newS3    func(ctx context.Context) (ObjectGetter, error)
	openFile func(name string) (*os.File, error)
}

// NewOpener returns an Opener that reads s3:// paths through an S3 client
// created on first use and everything else from the local filesystem.
func NewOpener(cfg config.S3Config) Opener {
	return &opener{
		newS3: func(ctx context.Context) (ObjectGetter, error) {
			return newS3Client(ctx, cfg)
		},
		openFile: os.Open,
	}
}

// NewOpenerWithClient uses client for every s3:// path.
func NewOpenerWithClient(client ObjectGetter) Opener {
	return &opener{client: client, openFile: os.Open}
}

func (o *opener) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, key, ok := ParseS3URI(path)
	if !ok {
		f, err := o.openFile(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	}

	if bucket == "" || key == "" {
		return nil, fmt.Errorf("invalid s3 location %q: bucket and key are required", path)
	}

	client, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", path, err)
	}
	return out.Body, nil
}

func (o *opener) s3Client(ctx context.Context) (ObjectGetter, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		return o.client, nil
	}
	if o.newS3 == nil {
		return nil, fmt.Errorf("s3 client is not configured")
	}

	client, err := o.newS3(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	o.client = client
	return client, nil
}

func newS3Client(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ParseS3URI splits s3://bucket/key. ok is false for non-S3 paths.
func ParseS3URI(path string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(path, s3Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, s3Scheme)
	bucket, key, _ = strings.Cut(rest, "/")
	return bucket, key, true
}
