package archivestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/commit-canvas/internal/domain/chart"
	"github.com/yanqian/commit-canvas/pkg/util"
)

const (
	metaFilename = "Filename"
	metaExpires  = "Expires-At"
)

// R2Store keeps archives in Cloudflare R2 via the S3-compatible API. Expiry
// is recorded in object metadata and enforced on read.
type R2Store struct {
	client *minio.Client
	bucket string
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

// R2Options configures the bucket connection.
type R2Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
}

// NewR2Store constructs the storage adapter.
func NewR2Store(opts R2Options, logger *slog.Logger) (*R2Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	useSSL := strings.HasPrefix(strings.ToLower(strings.TrimSpace(opts.Endpoint)), "https")
	client, err := minio.New(sanitizeEndpoint(opts.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       useSSL,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}
	prefix := strings.Trim(opts.Prefix, "/")
	if prefix == "" {
		prefix = "archives"
	}
	return &R2Store{
		client: client,
		bucket: opts.Bucket,
		prefix: prefix,
		logger: logger.With("component", "archivestore.r2"),
		now:    util.NowUTC,
	}, nil
}

func (s *R2Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Get implements chart.ArchiveStore.
func (s *R2Store) Get(ctx context.Context, key string) (chart.Archive, bool, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		return chart.Archive{}, false, err
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return chart.Archive{}, false, nil
		}
		return chart.Archive{}, false, err
	}
	if expiresAt := parseExpiry(info.UserMetadata[metaExpires]); util.Expired(s.now(), expiresAt) {
		if rmErr := s.client.RemoveObject(ctx, s.bucket, s.objectKey(key), minio.RemoveObjectOptions{}); rmErr != nil {
			s.logger.Warn("remove expired archive failed", "key", key, "error", rmErr)
		}
		return chart.Archive{}, false, nil
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return chart.Archive{}, false, err
	}
	return chart.Archive{
		Filename:    info.UserMetadata[metaFilename],
		ContentType: info.ContentType,
		Data:        data,
	}, true, nil
}

// Save uploads the archive with its expiry.
func (s *R2Store) Save(ctx context.Context, key string, archive chart.Archive, ttl time.Duration) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	meta := map[string]string{metaFilename: archive.Filename}
	if expiresAt := util.Expiry(s.now(), ttl); !expiresAt.IsZero() {
		meta[metaExpires] = expiresAt.Format(time.RFC3339)
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.objectKey(key), bytes.NewReader(archive.Data), int64(len(archive.Data)), minio.PutObjectOptions{
		ContentType:      archive.ContentType,
		UserMetadata:     meta,
		DisableMultipart: len(archive.Data) < 5*1024*1024,
	})
	return err
}

func (s *R2Store) objectKey(key string) string {
	return s.prefix + "/" + key
}

func parseExpiry(raw string) time.Time {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if i := strings.Index(raw, "/"); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

var _ chart.ArchiveStore = (*R2Store)(nil)
