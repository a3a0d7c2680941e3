package vision

import (
	"fmt"
	"strings"
)

const (
	noLabels      = "No labels detected"
	noObjects     = "No objects detected"
	noColors      = "No colors detected"
	noText        = "No text detected"
	noWebEntities = "No web entities detected"
)

// flatten collapses the annotation groups into prompt-ready strings.
func flatten(a *imageAnnotation) *ImageInsights {
	insights := &ImageInsights{
		Labels:       noLabels,
		Objects:      noObjects,
		Colors:       []string{noColors},
		DetectedText: noText,
		WebEntities:  noWebEntities,
	}

	if len(a.LabelAnnotations) > 0 {
		descriptions := make([]string, 0, len(a.LabelAnnotations))
		for _, l := range a.LabelAnnotations {
			descriptions = append(descriptions, l.Description)
		}
		insights.Labels = strings.Join(descriptions, ", ")
	}

	if len(a.LocalizedObjectAnnotations) > 0 {
		names := make([]string, 0, len(a.LocalizedObjectAnnotations))
		for _, o := range a.LocalizedObjectAnnotations {
			names = append(names, o.Name)
		}
		insights.Objects = strings.Join(names, ", ")
	}

	if a.ImagePropertiesAnnotation != nil && len(a.ImagePropertiesAnnotation.DominantColors.Colors) > 0 {
		colors := a.ImagePropertiesAnnotation.DominantColors.Colors
		// The first three dominant colors carry enough signal for a prompt.
		if len(colors) > 3 {
			colors = colors[:3]
		}
		formatted := make([]string, 0, len(colors))
		for _, ci := range colors {
			formatted = append(formatted, fmt.Sprintf("%d, %d, %d",
				int(ci.Color.Red), int(ci.Color.Green), int(ci.Color.Blue)))
		}
		insights.Colors = formatted
	}

	// The first text annotation aggregates the full detected text; the rest
	// repeat it word by word.
	if len(a.TextAnnotations) > 0 && a.TextAnnotations[0].Description != "" {
		insights.DetectedText = a.TextAnnotations[0].Description
	}

	if a.WebDetection != nil && len(a.WebDetection.WebEntities) > 0 {
		descriptions := make([]string, 0, len(a.WebDetection.WebEntities))
		for _, e := range a.WebDetection.WebEntities {
			if e.Description != "" {
				descriptions = append(descriptions, e.Description)
			}
		}
		if len(descriptions) > 0 {
			insights.WebEntities = strings.Join(descriptions, ", ")
		}
	}

	return insights
}
