package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/MichalMitros/supplier-feed-sync/cmd/syncer/config"
	"github.com/MichalMitros/supplier-feed-sync/internal/cleanup"
	"github.com/MichalMitros/supplier-feed-sync/internal/decoder"
	"github.com/MichalMitros/supplier-feed-sync/internal/feed"
	"github.com/MichalMitros/supplier-feed-sync/internal/fetcher"
	"github.com/MichalMitros/supplier-feed-sync/internal/handler"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/images"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/metrics"
	"github.com/MichalMitros/supplier-feed-sync/internal/platform/storage"
	"github.com/MichalMitros/supplier-feed-sync/internal/reconciler"
	"github.com/MichalMitros/supplier-feed-sync/internal/syncer"
	"github.com/MichalMitros/supplier-feed-sync/internal/syncstate"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

// service is fully wired sync engine.
type service struct {
	db         *sql.DB
	metrics    *metrics.Metrics
	dispatcher *handler.Dispatcher
}

func newService(ctx context.Context, cfg config.Config, logger *zerolog.Logger) (*service, error) {
	db, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	fetch := fetcher.NewFetcher(&http.Client{Timeout: cfg.HTTP.Timeout}, UserAgent,
		fetcher.WithRetries(cfg.Feed.Retries, nil))

	source := feed.NewSource(fetch, newDecoder(cfg), feed.Config{
		BaseURL:         cfg.Feed.BaseURL,
		PriceList:       cfg.Feed.PriceList,
		Token:           cfg.Feed.Token,
		DaysBack:        cfg.Feed.DaysBack,
		PageSize:        cfg.Feed.PageSize,
		Variations:      cfg.Feed.Variations,
		VariationImages: cfg.Feed.VariationImages,
	})

	ingester, err := newImageIngester(ctx, cfg.MinIO, fetch, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	pg := storage.NewPostgres(db)
	catalog := storage.NewCatalog(db)
	m := metrics.NewMetrics()

	rec := reconciler.NewReconciler(catalog, ingester, reconciler.Options{
		UpdateImages:     cfg.Sync.UpdateImages,
		UpdateCategories: cfg.Sync.UpdateCategories,
		UpdateBrand:      cfg.Sync.UpdateBrand,
		SizeAttribute:    cfg.Sync.SizeAttribute,
		ColorAttribute:   cfg.Sync.ColorAttribute,
	}, reconciler.WithLogger(logger))

	state := syncstate.NewState(pg)

	runner := syncer.NewSyncer(state, source, rec, syncer.Config{
		PageSize:                cfg.Feed.PageSize,
		Variations:              cfg.Feed.Variations,
		OnlyWithVariationImages: cfg.Sync.OnlyWithVariationImages,
		MinInterval:             cfg.Sync.MinInterval,
		TimeBudget:              cfg.Sync.TimeBudget,
		MemoryLimit:             cfg.Sync.MemoryLimit(),
	}, syncer.WithLogger(logger), syncer.WithMetrics(m))

	machine := cleanup.NewMachine(source, catalog, pg, cleanup.Config{
		Interval:    cfg.Cleanup.Interval,
		FetchBatch:  cfg.Cleanup.FetchBatch,
		DeleteBatch: cfg.Cleanup.DeleteBatch,
	}, cleanup.WithLogger(logger), cleanup.WithMetrics(m))

	return &service{
		db:         db,
		metrics:    m,
		dispatcher: handler.NewDispatcher(runner, machine, state, handler.WithDispatcherLogger(logger)),
	}, nil
}

func newDecoder(cfg config.Config) *decoder.Decoder {
	return decoder.NewDecoder(decoder.SelectSchema(cfg.Feed.Variations, cfg.Feed.VariationImages), decoder.Options{
		StockType:          cfg.Sync.StockType,
		AddVAT:             cfg.Sync.AddVAT,
		Rounding:           cfg.Sync.Rounding,
		NormalizeBrand:     cfg.Sync.NormalizeBrand,
		PlaceholderMarkers: cfg.Feed.PlaceholderImages,
	})
}

// newImageIngester returns MinIO backed ingester or passthrough one when MinIO isn't configured.
func newImageIngester(
	ctx context.Context,
	cfg config.MinIO,
	downloader images.Downloader,
	logger *zerolog.Logger,
) (reconciler.ImageIngester, error) {
	if cfg.Endpoint == "" {
		return images.Passthrough{}, nil
	}

	imagesCfg := images.Config{
		Endpoint:    cfg.Endpoint,
		AccessKey:   cfg.AccessKey,
		SecretKey:   cfg.SecretKey,
		UseSSL:      cfg.UseSSL,
		Bucket:      cfg.Bucket,
		PublicURL:   cfg.PublicURL,
		DownloadRPS: cfg.DownloadRPS,
	}

	client, err := images.NewMinIOClient(imagesCfg)
	if err != nil {
		return nil, err
	}

	store := images.NewMinIOStore(client, downloader, imagesCfg, images.WithLogger(logger))
	if err = store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *service) close(logger *zerolog.Logger) {
	if err := s.db.Close(); err != nil {
		logger.Error().Err(err).Msg("can't close Postgres connection")
	}
}

func openDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("can't open Postgres connection: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't connect to Postgres: %w", err)
	}

	return db, nil
}
