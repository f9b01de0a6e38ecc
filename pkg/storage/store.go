// Package storage publishes rendered diagnostics to an S3-compatible
// object store and fetches dataset snapshots from it.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

type Client struct {
	s3  *s3.Client
	cfg Config
}

// New builds a client against the configured endpoint (MinIO or any other
// S3-compatible store).
func New(ctx context.Context, cfg Config) (*Client, error) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.Endpoint,
			SigningRegion:     cfg.Region,
			HostnameImmutable: true,
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		return nil, err
	}

	return &Client{s3: s3.NewFromConfig(awsCfg), cfg: cfg}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.cfg.Bucket),
	})
	if err == nil {
		return nil
	}
	_, err = c.s3.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.cfg.Bucket, err)
	}
	log.Printf("Created bucket: %s", c.cfg.Bucket)
	return nil
}

// UploadDir publishes every .png artifact in dir under the configured
// prefix. Individual upload failures are logged and skipped so one bad
// file does not lose the rest of the run's artifacts.
func (c *Client) UploadDir(ctx context.Context, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".png") {
			continue
		}

		fpath := filepath.Join(dir, f.Name())
		file, err := os.Open(fpath)
		if err != nil {
			log.Printf("could not open file %s: %v", f.Name(), err)
			continue
		}

		_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(c.cfg.Bucket),
			Key:    aws.String(filepath.Join(c.cfg.Prefix, f.Name())),
			Body:   file,
		})
		file.Close()
		if err != nil {
			log.Printf("failed to upload %s: %v", f.Name(), err)
		} else {
			log.Printf("uploaded: %s", f.Name())
		}
	}

	return nil
}

// Download fetches an object into destPath, creating parent directories
// as needed.
func (c *Client) Download(ctx context.Context, key, destPath string) error {
	out, err := c.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("fetch %s/%s: %w", c.cfg.Bucket, key, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}
