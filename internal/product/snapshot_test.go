package product

import (
	"testing"

	"github.com/amal-thomson/pixelphraser-commercetools-connector/internal/commercetools"
)

func baseProduct() *commercetools.Product {
	return &commercetools.Product{
		ID:          "p-1",
		ProductType: commercetools.TypeReference{TypeID: "product-type", ID: "pt-1"},
		MasterData: commercetools.MasterData{
			Current: commercetools.ProductData{
				Name: commercetools.LocalizedString{"en": "Shirt", "de": "Hemd"},
				MasterVariant: commercetools.Variant{
					Images: []commercetools.Image{{URL: "http://x/img.jpg"}, {URL: "http://x/img2.jpg"}},
					Attributes: []commercetools.Attribute{
						{Name: "published", Value: true},
					},
				},
			},
			Staged: commercetools.ProductData{
				MasterVariant: commercetools.Variant{
					Attributes: []commercetools.Attribute{
						{Name: "generateDescription", Value: true},
					},
				},
			},
		},
	}
}

func TestNewSnapshot(t *testing.T) {
	snap := NewSnapshot(baseProduct())

	if snap.ProductID != "p-1" {
		t.Errorf("ProductID = %q, want p-1", snap.ProductID)
	}
	if snap.ProductTypeID != "pt-1" {
		t.Errorf("ProductTypeID = %q, want pt-1", snap.ProductTypeID)
	}
	if snap.Name != "Shirt" {
		t.Errorf("Name = %q, want Shirt (en preferred)", snap.Name)
	}
	if snap.ImageURL != "http://x/img.jpg" {
		t.Errorf("ImageURL = %q, want first current master variant image", snap.ImageURL)
	}
}

// Attributes must come from the staged variant: the opt-in flag is authored
// in draft state before publication.
func TestSnapshotUsesStagedAttributes(t *testing.T) {
	snap := NewSnapshot(baseProduct())

	if len(snap.Attributes) != 1 || snap.Attributes[0].Name != "generateDescription" {
		t.Errorf("Attributes = %+v, want the staged variant attributes", snap.Attributes)
	}
	if !snap.GenerationEnabled() {
		t.Error("GenerationEnabled() = false, want true")
	}
}

func TestSnapshotNameFallback(t *testing.T) {
	tests := []struct {
		name string
		m    commercetools.LocalizedString
		want string
	}{
		{"en preferred", commercetools.LocalizedString{"en": "Shirt", "en-US": "Tee"}, "Shirt"},
		{"en-US second", commercetools.LocalizedString{"en-US": "Tee", "fr": "Chemise"}, "Tee"},
		{"single value fallback", commercetools.LocalizedString{"de": "Hemd"}, "Hemd"},
		{"empty map", commercetools.LocalizedString{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProduct()
			p.MasterData.Current.Name = tt.m
			if got := NewSnapshot(p).Name; got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSnapshotNoImages(t *testing.T) {
	p := baseProduct()
	p.MasterData.Current.MasterVariant.Images = nil
	if got := NewSnapshot(p).ImageURL; got != "" {
		t.Errorf("ImageURL = %q, want empty", got)
	}
}

func TestGenerationEnabledTruthiness(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"nil", nil, false},
		{"empty string", "", false},
		{"string false is truthy", "false", true},
		{"string true", "true", true},
		{"zero number", float64(0), false},
		{"nonzero number", float64(1), true},
		{"object", map[string]any{"k": "v"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseProduct()
			p.MasterData.Staged.MasterVariant.Attributes = []commercetools.Attribute{
				{Name: "generateDescription", Value: tt.value},
			}
			if got := NewSnapshot(p).GenerationEnabled(); got != tt.want {
				t.Errorf("GenerationEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerationEnabledMissingAttribute(t *testing.T) {
	p := baseProduct()
	p.MasterData.Staged.MasterVariant.Attributes = []commercetools.Attribute{
		{Name: "color", Value: "red"},
	}
	if NewSnapshot(p).GenerationEnabled() {
		t.Error("GenerationEnabled() = true, want false when attribute is absent")
	}
}
