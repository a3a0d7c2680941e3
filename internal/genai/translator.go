package genai

import (
	"context"
	"fmt"
	"log/slog"
)

const translationPromptTemplate = `Translate the following product description into %s.

**Original Text (English)**: %s

**Translation Guidelines**:
- Maintain the tone and style of the original description.
- Ensure the text is fluent and sounds natural in %s.
- Adapt cultural nuances if necessary.
- Optimize for SEO where applicable.

Return the translated text without additional comments.`

// Translate renders the description into every requested language, one call
// per language in catalog order. The result is all-or-nothing: a single
// empty or failed translation fails the whole call so partial sets are never
// handed to persistence.
func (c *Client) Translate(ctx context.Context, description string, languages []string, correlationID string) (map[string]string, error) {
	c.logger.Info("translating description",
		slog.String("correlation_id", correlationID),
		slog.Int("language_count", len(languages)),
	)

	translations := make(map[string]string, len(languages))
	for _, lang := range languages {
		prompt := fmt.Sprintf(translationPromptTemplate, lang, description, lang)

		text, err := c.generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("translation to %s failed: %w", lang, err)
		}

		translations[lang] = text
		c.logger.Info("translation completed",
			slog.String("correlation_id", correlationID),
			slog.String("language", lang),
		)
	}

	return translations, nil
}
