// Package pipeline runs the post-acknowledgement enrichment sequence:
// image analysis, description generation, language selection, translation,
// and the two-phase staging write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/commercetools"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/product"
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/vision"
)

// ImageAnalyzer extracts descriptive insights from a product image.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageURL, correlationID string) (*vision.ImageInsights, error)
}

// TextGenerator produces a marketing description from image insights.
type TextGenerator interface {
	GenerateDescription(ctx context.Context, insights *vision.ImageInsights, productName, productTypeKey, correlationID string) (string, error)
}

// LanguageCatalog lists the operator-selected target languages.
type LanguageCatalog interface {
	SelectedLanguages(ctx context.Context, correlationID string) ([]string, error)
}

// Translator renders a description into each target language. The mapping
// must contain a non-empty entry per requested language.
type Translator interface {
	Translate(ctx context.Context, description string, languages []string, correlationID string) (map[string]string, error)
}

// StagingStore persists the provisional description record. Create has no
// upsert semantics; Update enforces optimistic concurrency against the
// version it reads.
type StagingStore interface {
	CreateStagingRecord(ctx context.Context, productID string, meta commercetools.StagingMetadata, languages []string, correlationID string) error
	UpdateStagingRecord(ctx context.Context, productID string, translations map[string]string, meta commercetools.StagingMetadata, correlationID string) error
}

// Input is what the webhook handler hands over once validation has passed
// and the event has been acknowledged.
type Input struct {
	CorrelationID  string
	Snapshot       *product.Snapshot
	ProductTypeKey string
}

// Result captures stage outputs as the pipeline advances. Each field is
// populated by exactly one stage and never mutated afterwards.
type Result struct {
	Insights     *vision.ImageInsights
	Description  string
	Languages    []string
	Translations map[string]string
	Elapsed      time.Duration
}

// Enricher composes the enrichment stages over the external collaborators.
type Enricher struct {
	analyzer   ImageAnalyzer
	generator  TextGenerator
	catalog    LanguageCatalog
	translator Translator
	staging    StagingStore
	logger     *slog.Logger
}

func NewEnricher(
	analyzer ImageAnalyzer,
	generator TextGenerator,
	catalog LanguageCatalog,
	translator Translator,
	staging StagingStore,
	logger *slog.Logger,
) *Enricher {
	return &Enricher{
		analyzer:   analyzer,
		generator:  generator,
		catalog:    catalog,
		translator: translator,
		staging:    staging,
		logger:     logger,
	}
}

// Run executes the stages strictly in order; the first failure aborts the
// remaining stages. There are no retries here, redelivery of the event is
// the retry mechanism.
func (e *Enricher) Run(ctx context.Context, in Input) (*Result, error) {
	start := time.Now()
	snap := in.Snapshot
	res := &Result{}

	insights, err := e.analyzer.Analyze(ctx, snap.ImageURL, in.CorrelationID)
	if err != nil {
		return nil, fmt.Errorf("image analysis stage: %w", err)
	}
	res.Insights = insights

	description, err := e.generator.GenerateDescription(ctx, insights, snap.Name, in.ProductTypeKey, in.CorrelationID)
	if err != nil {
		return nil, fmt.Errorf("description generation stage: %w", err)
	}
	res.Description = description

	languages, err := e.catalog.SelectedLanguages(ctx, in.CorrelationID)
	if err != nil {
		return nil, fmt.Errorf("language selection stage: %w", err)
	}
	res.Languages = languages

	translations, err := e.translator.Translate(ctx, description, languages, in.CorrelationID)
	if err != nil {
		return nil, fmt.Errorf("translation stage: %w", err)
	}
	for _, lang := range languages {
		if translations[lang] == "" {
			return nil, fmt.Errorf("translation stage: missing translation for %s", lang)
		}
	}
	res.Translations = translations

	meta := commercetools.StagingMetadata{
		ImageURL:    snap.ImageURL,
		ProductType: in.ProductTypeKey,
		ProductName: snap.Name,
	}

	if err := e.staging.CreateStagingRecord(ctx, snap.ProductID, meta, languages, in.CorrelationID); err != nil {
		return nil, fmt.Errorf("staging create stage: %w", err)
	}

	if err := e.staging.UpdateStagingRecord(ctx, snap.ProductID, translations, meta, in.CorrelationID); err != nil {
		return nil, fmt.Errorf("staging update stage: %w", err)
	}

	res.Elapsed = time.Since(start)
	e.logger.Info("enrichment completed",
		slog.String("correlation_id", in.CorrelationID),
		slog.String("product_id", snap.ProductID),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
