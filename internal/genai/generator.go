package genai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/vision"
)

const descriptionPromptTemplate = `Generate a persuasive, SEO-optimized product description (under 150 words) for a product type : %q, based on the following data:

**Product Name:** %q

**Image Insights:**
- Labels: %s
- Objects: %s
- Colors: %s
- Detected Text: %s
- Web Entities: %s

**Requirements:**
1. Write a compelling introduction that immediately captures attention.
2. Clearly define the product, emphasizing material, design, and standout features.
3. Explain functionality, benefits, and ideal use cases.
4. Mention available variations (colors, sizes) if applicable.
5. Ensure SEO-friendly, natural language without keyword stuffing.
6. Avoid any inappropriate, offensive, misleading, or exaggerated claims.
7. End with a strong, persuasive call to action (e.g., "Upgrade your experience today!").

**Key Features:**
- Bullet-point summary of essential attributes.

Return only the polished description text with a professional, engaging, and customer-friendly tone.`

// GenerateDescription produces a marketing description from the image
// insights, product name and product type key.
func (c *Client) GenerateDescription(ctx context.Context, insights *vision.ImageInsights, productName, productTypeKey, correlationID string) (string, error) {
	prompt := fmt.Sprintf(descriptionPromptTemplate,
		productTypeKey,
		productName,
		insights.Labels,
		insights.Objects,
		strings.Join(insights.Colors, ", "),
		insights.DetectedText,
		insights.WebEntities,
	)

	c.logger.Info("sending description generation prompt",
		slog.String("correlation_id", correlationID),
		slog.Int("prompt_tokens_approx", c.promptTokens(prompt)),
	)

	description, err := c.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("description generation failed: %w", err)
	}

	c.logger.Info("description generated",
		slog.String("correlation_id", correlationID),
	)
	return description, nil
}
