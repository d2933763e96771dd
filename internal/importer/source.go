// server/internal/importer/source.go
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "railfreight-directory-server/config"
)

// SourceOpener resolves a source path (local file or s3://bucket/key) to a
// reader.
type SourceOpener struct {
	s3Client *s3.Client
}

// NewSourceOpener builds an opener; the S3 client is only configured when
// credentials are present, local paths always work.
func NewSourceOpener(ctx context.Context, cfg appconfig.S3Config) (*SourceOpener, error) {
	opener := &SourceOpener{}

	if cfg.AccessKeyID != "" {
		sdkConfig, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(cfg.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		opener.s3Client = s3.NewFromConfig(sdkConfig)
	}

	return opener, nil
}

// Open returns a reader for path and the filename used for format detection.
func (o *SourceOpener) Open(ctx context.Context, path string) (io.ReadCloser, string, error) {
	if bucket, key, ok := parseS3URI(path); ok {
		if o.s3Client == nil {
			return nil, "", fmt.Errorf("s3 source %q requires S3 credentials", path)
		}
		out, err := o.s3Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, "", fmt.Errorf("fetch %s: %w", path, err)
		}
		return out.Body, key, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, path, nil
}

func parseS3URI(path string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(path, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
