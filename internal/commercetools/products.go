package commercetools

import (
	"context"
	"fmt"
	"log/slog"
)

// ProductByID fetches the full product entity for a product id. Fetch
// failures are not swallowed; the caller decides how to surface them.
func (c *Client) ProductByID(ctx context.Context, productID, correlationID string) (*Product, error) {
	c.logger.Info("fetching product data",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)

	var product Product
	if err := c.get(ctx, "/products/"+productID, &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	c.logger.Info("product data fetched",
		slog.String("correlation_id", correlationID),
		slog.String("product_id", productID),
	)
	return &product, nil
}

// ProductTypeKeyByID fetches the product type and returns its key.
func (c *Client) ProductTypeKeyByID(ctx context.Context, productTypeID, correlationID string) (string, error) {
	c.logger.Info("fetching product type key",
		slog.String("correlation_id", correlationID),
		slog.String("product_type_id", productTypeID),
	)

	var productType ProductType
	if err := c.get(ctx, "/product-types/"+productTypeID, &productType); err != nil {
		return "", fmt.Errorf("failed to fetch product type %s: %w", productTypeID, err)
	}
	if productType.Key == "" {
		return "", fmt.Errorf("product type %s has no key", productTypeID)
	}

	c.logger.Info("product type key fetched",
		slog.String("correlation_id", correlationID),
		slog.String("product_type_key", productType.Key),
	)
	return productType.Key, nil
}
