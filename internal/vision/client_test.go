package vision

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/testutil"
)

func newTestAnalyzer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient("test-key", logger,
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
	)
}

func TestAnalyzeFlattensAnnotations(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images:annotate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"responses": [{
			"labelAnnotations": [{"description": "label1"}, {"description": "label2"}],
			"localizedObjectAnnotations": [{"name": "object1"}, {"name": "object2"}],
			"imagePropertiesAnnotation": {"dominantColors": {"colors": [
				{"color": {"red": 255, "green": 0, "blue": 0}},
				{"color": {"red": 0, "green": 255, "blue": 0}},
				{"color": {"red": 0, "green": 0, "blue": 255}},
				{"color": {"red": 9, "green": 9, "blue": 9}}
			]}},
			"textAnnotations": [{"description": "some detected text"}, {"description": "some"}],
			"webDetection": {"webEntities": [{"description": "entity1"}, {"description": "entity2"}]}
		}]}`)
	})

	insights, err := analyzer.Analyze(t.Context(), "http://x/img.jpg", "msg-1")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if insights.Labels != "label1, label2" {
		t.Errorf("Labels = %q", insights.Labels)
	}
	if insights.Objects != "object1, object2" {
		t.Errorf("Objects = %q", insights.Objects)
	}
	want := []string{"255, 0, 0", "0, 255, 0", "0, 0, 255"}
	if len(insights.Colors) != 3 {
		t.Fatalf("Colors = %v, want top 3", insights.Colors)
	}
	for i, c := range want {
		if insights.Colors[i] != c {
			t.Errorf("Colors[%d] = %q, want %q", i, insights.Colors[i], c)
		}
	}
	if insights.DetectedText != "some detected text" {
		t.Errorf("DetectedText = %q", insights.DetectedText)
	}
	if insights.WebEntities != "entity1, entity2" {
		t.Errorf("WebEntities = %q", insights.WebEntities)
	}
}

func TestAnalyzeEmptyAnnotationsUseSentinels(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses": [{}]}`)
	})

	insights, err := analyzer.Analyze(t.Context(), "http://x/img.jpg", "msg-1")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if insights.Labels != "No labels detected" {
		t.Errorf("Labels = %q", insights.Labels)
	}
	if insights.Objects != "No objects detected" {
		t.Errorf("Objects = %q", insights.Objects)
	}
	if len(insights.Colors) != 1 || insights.Colors[0] != "No colors detected" {
		t.Errorf("Colors = %v", insights.Colors)
	}
	if insights.DetectedText != "No text detected" {
		t.Errorf("DetectedText = %q", insights.DetectedText)
	}
	if insights.WebEntities != "No web entities detected" {
		t.Errorf("WebEntities = %q", insights.WebEntities)
	}
}

func TestAnalyzeNullAnnotationIsError(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"responses": [null]}`)
	})

	if _, err := analyzer.Analyze(t.Context(), "http://x/img.jpg", "msg-1"); err == nil {
		t.Error("expected error for null annotation")
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	analyzer := newTestAnalyzer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error": {"message": "API key invalid"}}`)
	})

	if _, err := analyzer.Analyze(t.Context(), "http://x/img.jpg", "msg-1"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

// Replays a recorded interaction with the live API when a cassette exists;
// record one with VCR_MODE=record and a valid key.
func TestAnalyzeRecorded(t *testing.T) {
	const cassetteName = "vision_annotate"
	if !testutil.HasCassette(cassetteName) && !testutil.RecordMode() {
		t.Skipf("no cassette %s recorded", cassetteName)
	}

	r, cleanup := testutil.NewVCRRecorder(t, cassetteName)
	defer cleanup()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer := NewClient("test-key", logger, WithHTTPClient(testutil.VCRHTTPClient(r)))

	insights, err := analyzer.Analyze(t.Context(), "http://x/img.jpg", "msg-1")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if insights.Labels == "" {
		t.Error("expected labels in recorded response")
	}
}
