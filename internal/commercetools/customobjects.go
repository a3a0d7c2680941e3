package commercetools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	// stagingContainer holds the provisional per-product description
	// records handed off to the publication flow.
	stagingContainer = "temporaryDescription"

	// languagesContainer/languagesKey address the operator-maintained list
	// of target translation languages (written by the admin panel).
	languagesContainer = "selectedLanguages"
	languagesKey       = "pixelphraser"
)

// StagingMetadata is the non-translation portion of a staging record.
type StagingMetadata struct {
	ImageURL    string
	ProductType string
	ProductName string
}

// SelectedLanguages fetches the configured translation languages. A value
// stored as an object instead of an array is flattened to its values.
func (c *Client) SelectedLanguages(ctx context.Context, correlationID string) ([]string, error) {
	c.logger.Info("fetching selected languages",
		slog.String("correlation_id", correlationID),
	)

	var obj CustomObject
	if err := c.get(ctx, fmt.Sprintf("/custom-objects/%s/%s", languagesContainer, languagesKey), &obj); err != nil {
		return nil, fmt.Errorf("failed to fetch selected languages: %w", err)
	}

	var languages []string
	switch v := obj.Value.(type) {
	case []any:
		for _, item := range v {
			languages = append(languages, fmt.Sprint(item))
		}
	case map[string]any:
		for _, item := range v {
			languages = append(languages, fmt.Sprint(item))
		}
	default:
		return nil, fmt.Errorf("unexpected selected languages value of type %T", obj.Value)
	}

	if len(languages) == 0 {
		return nil, errors.New("no languages selected for translation")
	}

	c.logger.Info("selected languages fetched",
		slog.String("correlation_id", correlationID),
		slog.Any("languages", languages),
	)
	return languages, nil
}

// CreateStagingRecord writes a fresh staging record keyed by the product id,
// with one null description slot per selected language. A record that
// already exists under the key is a conflict, not an upsert target.
func (c *Client) CreateStagingRecord(ctx context.Context, productID string, meta StagingMetadata, languages []string, correlationID string) error {
	c.logger.Info("creating staging record",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)

	var existing CustomObject
	err := c.get(ctx, fmt.Sprintf("/custom-objects/%s/%s", stagingContainer, productID), &existing)
	if err == nil {
		return fmt.Errorf("staging record for product %s: %w", productID, ErrAlreadyExists)
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check staging record for product %s: %w", productID, err)
	}

	value := make(map[string]any, len(languages)+3)
	for _, lang := range languages {
		value[lang] = nil
	}
	value["imageUrl"] = meta.ImageURL
	value["productType"] = meta.ProductType
	value["productName"] = meta.ProductName

	draft := customObjectDraft{
		Container: stagingContainer,
		Key:       productID,
		Value:     value,
	}
	if err := c.post(ctx, "/custom-objects", draft, nil); err != nil {
		return fmt.Errorf("failed to create staging record for product %s: %w", productID, err)
	}

	c.logger.Info("staging record created",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)
	return nil
}

// UpdateStagingRecord overwrites the staging record with the full translation
// set. It reads the record first to obtain the current version and submits
// that version with the write, so a concurrent writer is rejected by the
// store. A missing record at this point is a consistency error, not a
// retryable condition.
func (c *Client) UpdateStagingRecord(ctx context.Context, productID string, translations map[string]string, meta StagingMetadata, correlationID string) error {
	c.logger.Info("updating staging record",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)

	var existing CustomObject
	err := c.get(ctx, fmt.Sprintf("/custom-objects/%s/%s", stagingContainer, productID), &existing)
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("message %s: staging record for product %s: %w", correlationID, productID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read staging record for product %s: %w", productID, err)
	}

	value := make(map[string]any, len(translations)+4)
	for lang, text := range translations {
		value[lang] = text
	}
	value["imageUrl"] = meta.ImageURL
	value["productType"] = meta.ProductType
	value["productName"] = meta.ProductName
	value["generatedAt"] = time.Now().UTC().Format(time.RFC3339)

	draft := customObjectDraft{
		Container: stagingContainer,
		Key:       productID,
		Version:   &existing.Version,
		Value:     value,
	}
	if err := c.post(ctx, "/custom-objects", draft, nil); err != nil {
		return fmt.Errorf("failed to update staging record for product %s: %w", productID, err)
	}

	c.logger.Info("staging record updated",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)
	return nil
}
