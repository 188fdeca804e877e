package images

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/slug"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultExt  = ".jpg"
	maxExtLen   = 5
	hashPrefix  = 12
	defaultRate = 5
)

//go:generate mockery --name ObjectStore --filename object_store.go
//go:generate mockery --name Downloader --filename downloader.go

// ObjectStore stores objects in bucket.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(
		ctx context.Context,
		bucketName, objectName string,
		reader io.Reader,
		objectSize int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
}

// Downloader downloads body of provided url.
type Downloader interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

// Config is MinIO connection and bucket configuration.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicURL is base url under which bucket objects are served.
	PublicURL string
	// DownloadRPS limits number of image downloads per second.
	DownloadRPS float64
}

// NewMinIOClient returns MinIO client for config.
func NewMinIOClient(cfg Config) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create minio client: %w", err)
	}

	return client, nil
}

// Option is custom configuration of MinIOStore.
type Option func(s *MinIOStore)

// MinIOStore downloads product images and uploads them to bucket.
type MinIOStore struct {
	store      ObjectStore
	downloader Downloader
	bucket     string
	publicURL  string
	limiter    *rate.Limiter
	logger     *zerolog.Logger
}

// NewMinIOStore returns new MinIOStore.
func NewMinIOStore(store ObjectStore, downloader Downloader, cfg Config, ops ...Option) *MinIOStore {
	rps := cfg.DownloadRPS
	if rps <= 0 {
		rps = defaultRate
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	nop := zerolog.Nop()
	s := &MinIOStore{
		store:      store,
		downloader: downloader,
		bucket:     cfg.Bucket,
		publicURL:  strings.TrimRight(publicURL, "/"),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     &nop,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// EnsureBucket creates bucket if it doesn't exist.
func (s *MinIOStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.store.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("can't check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err = s.store.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("can't create bucket %s: %w", s.bucket, err)
	}

	return nil
}

// Ingest downloads images from urls and uploads them under sku.
// Failed images are skipped. ErrNoImages is returned when none of images could be stored.
func (s *MinIOStore) Ingest(ctx context.Context, sku string, urls []string) ([]models.Image, error) {
	images := make([]models.Image, 0, len(urls))

	for ix, sourceURL := range urls {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("can't wait for image download: %w", err)
		}

		publicURL, err := s.ingest(ctx, sku, ix, sourceURL)
		if err != nil {
			s.logger.Warn().Err(err).Str("sku", sku).Str("url", sourceURL).Msg("can't store image")
			continue
		}

		images = append(images, models.Image{Position: len(images), URL: publicURL, SourceURL: sourceURL})
	}

	if len(urls) > 0 && len(images) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoImages, sku)
	}

	return images, nil
}

func (s *MinIOStore) ingest(ctx context.Context, sku string, position int, sourceURL string) (string, error) {
	data, err := s.downloader.FetchPage(ctx, sourceURL)
	if err != nil {
		return "", fmt.Errorf("can't download image: %w", err)
	}

	key := ObjectKey(sku, position, sourceURL)
	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		return "", fmt.Errorf("can't upload image: %w", err)
	}

	return s.publicURL + "/" + key, nil
}

// ObjectKey returns bucket key of image: <sku slug>/<position>-<url hash><ext>.
func ObjectKey(sku string, position int, sourceURL string) string {
	sum := sha1.Sum([]byte(sourceURL))

	return fmt.Sprintf("%s/%d-%s%s", slug.Make(sku), position, hex.EncodeToString(sum[:])[:hashPrefix], extension(sourceURL))
}

func extension(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return defaultExt
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if len(ext) < 2 || len(ext) > maxExtLen {
		return defaultExt
	}

	return ext
}

// WithLogger sets MinIOStore's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *MinIOStore) {
		s.logger = logger
	}
}

// WithLimiter sets MinIOStore's download rate limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(s *MinIOStore) {
		s.limiter = limiter
	}
}
