// Package product derives the request-scoped view of a fetched product
// entity that the validation guards and enrichment pipeline work from.
package product

import (
	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/commercetools"
)

// generateDescriptionAttribute is the variant attribute operators set to
// opt a product into automatic description generation.
const generateDescriptionAttribute = "generateDescription"

// Snapshot is a read-only extract of a product entity. It lives for one
// webhook request and is discarded afterwards.
type Snapshot struct {
	ProductID     string
	ProductTypeID string

	// Name resolves "en" first, then "en-US", then falls back to an
	// arbitrary value from the name map. The fallback order is not stable
	// across fetches; see LocalizedString.
	Name string

	// ImageURL is the first image of the current master variant, empty if
	// the variant has none.
	ImageURL string

	// Attributes come from the staged master variant, not current:
	// generation-intent flags are authored in draft state before the
	// product is published.
	Attributes []commercetools.Attribute
}

// NewSnapshot extracts the fields the pipeline needs from a product entity.
func NewSnapshot(p *commercetools.Product) *Snapshot {
	s := &Snapshot{
		ProductID:     p.ID,
		ProductTypeID: p.ProductType.ID,
		Name:          p.MasterData.Current.Name.Resolve("en", "en-US"),
		Attributes:    p.MasterData.Staged.MasterVariant.Attributes,
	}
	if images := p.MasterData.Current.MasterVariant.Images; len(images) > 0 {
		s.ImageURL = images[0].URL
	}
	return s
}

// GenerationEnabled reports whether the opt-in attribute is present with a
// truthy value.
func (s *Snapshot) GenerationEnabled() bool {
	for _, attr := range s.Attributes {
		if attr.Name == generateDescriptionAttribute {
			return truthy(attr.Value)
		}
	}
	return false
}

// truthy applies JavaScript-style truthiness, which is how the opt-in flag
// has historically been interpreted: false, nil, zero and the empty string
// are falsy, everything else (including the string "false") is truthy.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return true
	}
}
