package images_test

import (
	"context"
	"errors"
	"testing"

	"github.com/MichalMitros/supplier-feed-sync/internal/platform/images"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/images/mocks"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/models"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	jpgURL = "https://feed.example.com/img/A100.JPG"
	pngURL = "https://feed.example.com/img/a100-2.png?v=3"
)

var errTest = errors.New("test error")

func TestUnitPassthrough(t *testing.T) {
	got, err := images.Passthrough{}.Ingest(context.Background(), "A100", []string{jpgURL, pngURL})

	require.NoError(t, err)
	assert.Equal(t, []models.Image{
		{Position: 0, URL: jpgURL, SourceURL: jpgURL},
		{Position: 1, URL: pngURL, SourceURL: pngURL},
	}, got)
}

func TestUnitObjectKey(t *testing.T) {
	tests := map[string]struct {
		sku      string
		position int
		url      string
		want     string
	}{
		"lowercased extension": {
			sku:  "A100",
			url:  jpgURL,
			want: "a100/0-23ccf825daa7.jpg",
		},
		"query is ignored": {
			sku:      "A100",
			position: 1,
			url:      pngURL,
			want:     "a100/1-c5fc804066a2.png",
		},
		"missing extension": {
			sku:      "Scarpa Uomo/42",
			position: 2,
			url:      "https://feed.example.com/img/photo",
			want:     "scarpa-uomo-42/2-01aa6bab91fa.jpg",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, images.ObjectKey(tc.sku, tc.position, tc.url))
		})
	}
}

func TestUnitEnsureBucket(t *testing.T) {
	tests := map[string]struct {
		exists    bool
		existsErr error
		makeErr   error
		wantMake  bool
		wantErr   error
	}{
		"existing bucket": {
			exists: true,
		},
		"missing bucket": {
			wantMake: true,
		},
		"check failure": {
			existsErr: errTest,
			wantErr:   errTest,
		},
		"create failure": {
			wantMake: true,
			makeErr:  errTest,
			wantErr:  errTest,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := mocks.NewObjectStore(t)
			store.On("BucketExists", ctx, "product-images").Return(tc.exists, tc.existsErr)
			if tc.wantMake {
				store.On("MakeBucket", ctx, "product-images", minio.MakeBucketOptions{}).Return(tc.makeErr)
			}

			s := images.NewMinIOStore(store, mocks.NewDownloader(t), images.Config{Bucket: "product-images"})
			err := s.EnsureBucket(ctx)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUnitIngest(t *testing.T) {
	ctx := context.Background()
	jpg := []byte("\xff\xd8\xff\xe0 jpeg body")

	downloader := mocks.NewDownloader(t)
	downloader.On("FetchPage", ctx, jpgURL).Return(jpg, nil).Once()
	downloader.On("FetchPage", ctx, pngURL).Return(nil, errTest).Once()

	store := mocks.NewObjectStore(t)
	store.On("PutObject", ctx, "product-images", "a100/0-23ccf825daa7.jpg", mock.Anything, int64(len(jpg)),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "image/jpeg" }),
	).Return(minio.UploadInfo{}, nil).Once()

	s := images.NewMinIOStore(store, downloader, images.Config{
		Bucket:    "product-images",
		PublicURL: "https://cdn.example.com/product-images/",
	}, images.WithLimiter(rate.NewLimiter(rate.Inf, 1)))

	got, err := s.Ingest(ctx, "A100", []string{jpgURL, pngURL})

	require.NoError(t, err)
	assert.Equal(t, []models.Image{{
		Position:  0,
		URL:       "https://cdn.example.com/product-images/a100/0-23ccf825daa7.jpg",
		SourceURL: jpgURL,
	}}, got)
}

func TestUnitIngestDefaultPublicURL(t *testing.T) {
	ctx := context.Background()

	downloader := mocks.NewDownloader(t)
	downloader.On("FetchPage", ctx, jpgURL).Return([]byte("body"), nil)

	store := mocks.NewObjectStore(t)
	store.On("PutObject", ctx, "bucket", mock.Anything, mock.Anything, int64(4), mock.Anything).Return(minio.UploadInfo{}, nil)

	s := images.NewMinIOStore(store, downloader, images.Config{Endpoint: "minio:9000", UseSSL: true, Bucket: "bucket"},
		images.WithLimiter(rate.NewLimiter(rate.Inf, 1)))

	got, err := s.Ingest(ctx, "A100", []string{jpgURL})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://minio:9000/bucket/a100/0-23ccf825daa7.jpg", got[0].URL)
}

func TestUnitIngestFailure(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		prepare func(store *mocks.ObjectStore, downloader *mocks.Downloader)
		urls    []string
		wantErr error
	}{
		"no urls": {
			prepare: func(*mocks.ObjectStore, *mocks.Downloader) {},
		},
		"every download fails": {
			prepare: func(_ *mocks.ObjectStore, downloader *mocks.Downloader) {
				downloader.On("FetchPage", ctx, mock.Anything).Return(nil, errTest).Twice()
			},
			urls:    []string{jpgURL, pngURL},
			wantErr: images.ErrNoImages,
		},
		"upload fails": {
			prepare: func(store *mocks.ObjectStore, downloader *mocks.Downloader) {
				downloader.On("FetchPage", ctx, jpgURL).Return([]byte("body"), nil).Once()
				store.On("PutObject", ctx, "bucket", mock.Anything, mock.Anything, int64(4), mock.Anything).
					Return(minio.UploadInfo{}, errTest).Once()
			},
			urls:    []string{jpgURL},
			wantErr: images.ErrNoImages,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			store := mocks.NewObjectStore(t)
			downloader := mocks.NewDownloader(t)
			tc.prepare(store, downloader)

			s := images.NewMinIOStore(store, downloader, images.Config{Bucket: "bucket"},
				images.WithLimiter(rate.NewLimiter(rate.Inf, 1)))

			got, err := s.Ingest(ctx, "A100", tc.urls)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestUnitIngestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := images.NewMinIOStore(mocks.NewObjectStore(t), mocks.NewDownloader(t), images.Config{Bucket: "bucket"})

	_, err := s.Ingest(ctx, "A100", []string{jpgURL})

	assert.ErrorIs(t, err, context.Canceled)
}
