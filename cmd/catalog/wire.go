package main

import (
	"os"

	"github.com/modulargunworks/catalog/config"
	"github.com/modulargunworks/catalog/internal/infrastructure/cache"
	"github.com/modulargunworks/catalog/internal/infrastructure/catalogjson"
	"github.com/modulargunworks/catalog/internal/infrastructure/imagefs"
	"github.com/modulargunworks/catalog/internal/infrastructure/logging"
	"github.com/modulargunworks/catalog/internal/infrastructure/sheet"
	"github.com/modulargunworks/catalog/internal/usecase"
	"github.com/rs/zerolog"
)

// app holds the wired dependencies of one process
type app struct {
	config  *config.Config
	logger  zerolog.Logger
	cache   *cache.MemoryCache
	service *usecase.IngestService
	reader  *catalogjson.Reader
}

func newApp(cfg *config.Config) (*app, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}

	memoryCache := cache.NewMemoryCache(cfg.Images.CacheTTL)
	store := imagefs.NewStore(memoryCache, cfg.Images.CacheTTL, logger)
	resolver := usecase.NewImageResolver(store, imageResolverConfig(cfg.Images))

	service := usecase.NewIngestService(
		sheet.NewLoader(logger),
		resolver,
		catalogjson.NewWriter(cfg.Output.Path),
		usecase.IngestConfig{
			InputPath:  cfg.Input.Path,
			OutputPath: cfg.Output.Path,
			Layout:     sheetLayout(cfg.Sheet),
		},
		logger,
	)

	return &app{
		config:  cfg,
		logger:  logger,
		cache:   memoryCache,
		service: service,
		reader:  catalogjson.NewReader(cfg.Output.Path),
	}, nil
}

func (a *app) Close() {
	a.cache.Close()
}

func imageResolverConfig(cfg config.ImagesConfig) usecase.ImageResolverConfig {
	return usecase.ImageResolverConfig{
		Root:         cfg.Root,
		AssetRoot:    cfg.AssetRoot,
		ThumbnailDir: cfg.ThumbnailDir,
		Match: usecase.ImageMatchOptions{
			Extensions:   cfg.Extensions,
			CanonicalExt: cfg.CanonicalExt,
		},
	}
}

func sheetLayout(cfg config.SheetConfig) usecase.SheetLayout {
	return usecase.SheetLayout{
		HeaderMarkers:       cfg.HeaderMarkers,
		MaxScanLines:        cfg.MaxScanLines,
		MinColumns:          cfg.MinColumns,
		LabelColumn:         cfg.Columns.Label,
		SectionBlankColumns: cfg.Columns.SectionBlank,
		SKUColumn:           cfg.Columns.SKU,
		CaseQtyColumn:       cfg.Columns.CaseQty,
		NameColumn:          cfg.Columns.Name,
		UPCColumn:           cfg.Columns.UPC,
		AuthPriceColumn:     cfg.Columns.AuthPrice,
		AuthPlusColumn:      cfg.Columns.AuthPlus,
		MAPColumn:           cfg.Columns.MAP,
		MSRPColumn:          cfg.Columns.MSRP,
		BrandColumn:         cfg.Columns.Brand,
		FallbackCategory:    cfg.FallbackCategory,
		Brand:               cfg.Brand,
	}
}
