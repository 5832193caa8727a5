package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nutriswap/nutriswap/openfoodfacts"
)

const (
	// categorySampleSize bounds the taxonomy pull: the live source returns
	// hundreds of tags, this ingestion is a controlled sample.
	categorySampleSize = 3
	// productPageSize is the page size requested per category search.
	productPageSize = 1000
)

// Source is the upstream API surface the orchestrator pulls from.
type Source interface {
	Categories(ctx context.Context) ([]openfoodfacts.CategoryTag, error)
	SearchByCategory(ctx context.Context, categoryID string, pageSize int) ([]openfoodfacts.ProductPayload, error)
}

// Orchestrator drives one end-to-end ingestion batch: fetch and persist a
// sample of the category taxonomy, then fetch and persist the products of
// every stored category. Individual record failures are counted and skipped;
// upstream call failures abort the run.
type Orchestrator struct {
	source     Source
	categories CategoryStore
	ingestor   *Ingestor
	log        *zap.Logger
}

func NewOrchestrator(source Source, categories CategoryStore, ingestor *Ingestor, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		source:     source,
		categories: categories,
		ingestor:   ingestor,
		log:        log,
	}
}

// Run executes one batch and returns its stats. The error is non-nil only for
// fatal failures (upstream or storage); the stats are valid either way.
func (o *Orchestrator) Run(ctx context.Context) (*Stats, error) {
	log := o.log.With(zap.String("run_id", uuid.NewString()))
	stats := newStats()

	log.Info("fetching category taxonomy")
	tags, err := o.source.Categories(ctx)
	if err != nil {
		return stats, fmt.Errorf("ingestion aborted: %w", err)
	}
	if len(tags) > categorySampleSize {
		tags = tags[:categorySampleSize]
	}

	log.Info("saving categories", zap.Int("count", len(tags)))
	for _, tag := range tags {
		if _, err := o.ingestor.UpsertCategory(tag); err != nil {
			if !o.recordSkip(log, stats, err) {
				return stats, fmt.Errorf("save category %q: %w", tag.Name, err)
			}
			continue
		}
		stats.CategoriesCreated++
	}

	// Every stored category is fetched, pre-existing ones from earlier runs
	// included.
	categories, err := o.categories.GetAll()
	if err != nil {
		return stats, fmt.Errorf("load categories: %w", err)
	}

	for _, category := range categories {
		log.Info("fetching products", zap.String("category", category.Name))
		payloads, err := o.source.SearchByCategory(ctx, category.SourceID, productPageSize)
		if err != nil {
			return stats, fmt.Errorf("ingestion aborted at category %q: %w", category.Name, err)
		}

		log.Info("saving products",
			zap.String("category", category.Name),
			zap.Int("count", len(payloads)),
		)
		for _, payload := range payloads {
			result, err := o.ingestor.IngestProduct(payload)
			if err != nil {
				if !o.recordSkip(log, stats, err) {
					return stats, fmt.Errorf("save product: %w", err)
				}
				continue
			}
			stats.ProductsCreated++
			stats.LinksCreated += result.LinksCreated
			stats.LinksSkipped += result.LinksSkipped
		}
	}

	log.Info("ingestion finished",
		zap.Int("categories_created", stats.CategoriesCreated),
		zap.Int("products_created", stats.ProductsCreated),
		zap.Int("links_created", stats.LinksCreated),
		zap.Int("links_skipped", stats.LinksSkipped),
		zap.Any("skipped", stats.Skipped),
	)
	return stats, nil
}

// recordSkip counts a tagged per-record skip and reports whether err was one.
func (o *Orchestrator) recordSkip(log *zap.Logger, stats *Stats, err error) bool {
	var skip *SkipError
	if !errors.As(err, &skip) {
		return false
	}
	stats.skip(skip.Reason)
	log.Debug("record skipped",
		zap.String("reason", string(skip.Reason)),
		zap.String("field", skip.Field),
		zap.Error(skip.Err),
	)
	return true
}
