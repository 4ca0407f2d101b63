package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/modulargunworks/catalog/internal/domain"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// IngestConfig holds configuration for the ingest service
type IngestConfig struct {
	InputPath  string
	OutputPath string
	Layout     SheetLayout
}

// IngestService runs the vendor export through the catalog pipeline.
// Runs are serialized; the output document is not safe for concurrent writers.
type IngestService struct {
	loader     domain.SheetLoader
	resolver   *ImageResolver
	writer     domain.CatalogWriter
	classifier *RowClassifier
	normalizer *FieldNormalizer
	config     IngestConfig
	logger     zerolog.Logger
	now        func() time.Time

	runMu  sync.Mutex
	lastMu sync.RWMutex
	last   *domain.RunReport
}

// NewIngestService creates an ingest service with dependencies
func NewIngestService(
	loader domain.SheetLoader,
	resolver *ImageResolver,
	writer domain.CatalogWriter,
	config IngestConfig,
	logger zerolog.Logger,
) *IngestService {
	return &IngestService{
		loader:     loader,
		resolver:   resolver,
		writer:     writer,
		classifier: NewRowClassifier(config.Layout),
		normalizer: NewFieldNormalizer(config.Layout),
		config:     config,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes one ingestion pass, waiting for any active run to finish.
// Flow: load -> locate header -> classify -> normalize + resolve -> aggregate -> write
func (s *IngestService) Run(ctx context.Context) (*domain.RunReport, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.run(ctx)
}

// TryRun executes one ingestion pass unless another is active,
// in which case it returns domain.ErrRunInProgress
func (s *IngestService) TryRun(ctx context.Context) (*domain.RunReport, error) {
	if !s.runMu.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer s.runMu.Unlock()
	return s.run(ctx)
}

// LastReport returns the report of the most recent successful run
func (s *IngestService) LastReport() (*domain.RunReport, error) {
	s.lastMu.RLock()
	defer s.lastMu.RUnlock()
	if s.last == nil {
		return nil, domain.ErrNoRunYet
	}
	report := *s.last
	return &report, nil
}

func (s *IngestService) run(ctx context.Context) (*domain.RunReport, error) {
	report := &domain.RunReport{
		RunID:     ulid.Make().String(),
		Input:     s.config.InputPath,
		Output:    s.config.OutputPath,
		StartedAt: s.now().UTC(),
	}
	log := s.logger.With().Str("run_id", report.RunID).Logger()
	log.Info().Str("input", report.Input).Msg("ingest started")

	data, err := s.loader.Load(ctx, s.config.InputPath)
	if err != nil {
		log.Error().Err(err).Msg("load sheet failed")
		return nil, err
	}

	offset, err := LocateHeader(data, s.config.Layout.HeaderMarkers, s.config.Layout.MaxScanLines)
	if err != nil {
		var perr *domain.ParseError
		if errors.As(err, &perr) {
			perr.Path = s.config.InputPath
		}
		log.Error().Err(err).Msg("header not found")
		return nil, err
	}

	s.resolver.Reset(ctx)
	agg := NewCatalogAggregator()
	if err := s.ingestRows(ctx, data[offset:], agg, &report.Skipped, log); err != nil {
		return nil, err
	}

	catalog := agg.Catalog()
	if err := s.writer.Write(ctx, catalog); err != nil {
		log.Error().Err(err).Str("output", s.config.OutputPath).Msg("write catalog failed")
		if !errors.Is(err, domain.ErrWriteCatalog) {
			err = fmt.Errorf("%w: %v", domain.ErrWriteCatalog, err)
		}
		return nil, err
	}

	report.Products = catalog.Count()
	report.Brands = agg.BrandCounts()
	report.MissingImages = agg.MissingImages()
	report.FinishedAt = s.now().UTC()

	log.Info().
		Int("products", report.Products).
		Int("missing_images", len(report.MissingImages)).
		Dur("elapsed", report.Duration()).
		Msg("ingest finished")

	s.lastMu.Lock()
	s.last = report
	s.lastMu.Unlock()

	return report, nil
}

// ingestRows reads the table starting at the header row
func (s *IngestService) ingestRows(
	ctx context.Context,
	table []byte,
	agg *CatalogAggregator,
	skipped *domain.SkipCounts,
	log zerolog.Logger,
) error {
	reader := csv.NewReader(bytes.NewReader(table))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("%w: header row: %v", domain.ErrReadSheet, err)
	}

	var state ClassifierState
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped.MalformedRows++
				log.Debug().Err(err).Msg("skipping malformed row")
				continue
			}
			return fmt.Errorf("%w: %v", domain.ErrReadSheet, err)
		}

		var kind RowKind
		kind, state = s.classifier.Classify(state, row)
		switch kind {
		case RowShort:
			skipped.ShortRows++
			continue
		case RowSection:
			skipped.SectionMarkers++
			log.Debug().Str("category", state.Category).Msg("section marker")
			continue
		}

		product, ok := s.normalizer.Normalize(row, state.CategoryOr(s.config.Layout.FallbackCategory))
		if !ok {
			skipped.MissingSKUOrName++
			continue
		}

		agg.Add(product, s.resolver.Resolve(ctx, product.SKU))
	}
}
