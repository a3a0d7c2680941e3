package vision

// Request/response shapes for the Cloud Vision images:annotate endpoint.
// Only the fields the connector reads are declared.

type annotateRequest struct {
	Requests []annotateImageRequest `json:"requests"`
}

type annotateImageRequest struct {
	Image    imageSource `json:"image"`
	Features []feature   `json:"features"`
}

type imageSource struct {
	Source struct {
		ImageURI string `json:"imageUri"`
	} `json:"source"`
}

type feature struct {
	Type string `json:"type"`
}

type annotateResponse struct {
	Responses []*imageAnnotation `json:"responses"`
}

type imageAnnotation struct {
	LabelAnnotations           []entityAnnotation `json:"labelAnnotations"`
	LocalizedObjectAnnotations []localizedObject  `json:"localizedObjectAnnotations"`
	ImagePropertiesAnnotation  *imageProperties   `json:"imagePropertiesAnnotation"`
	TextAnnotations            []entityAnnotation `json:"textAnnotations"`
	WebDetection               *webDetection      `json:"webDetection"`
}

type entityAnnotation struct {
	Description string `json:"description"`
}

type localizedObject struct {
	Name string `json:"name"`
}

type imageProperties struct {
	DominantColors struct {
		Colors []colorInfo `json:"colors"`
	} `json:"dominantColors"`
}

type colorInfo struct {
	Color rgbColor `json:"color"`
}

type rgbColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type webDetection struct {
	WebEntities []webEntity `json:"webEntities"`
}

type webEntity struct {
	Description string `json:"description"`
}

// ImageInsights is the flattened analysis result fed into description
// generation. Empty detection groups are replaced with sentinel strings so
// the prompt never contains blank fields.
type ImageInsights struct {
	Labels       string
	Objects      string
	Colors       []string
	DetectedText string
	WebEntities  string
}
