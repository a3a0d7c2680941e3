package commercetools

// LocalizedString maps a locale code to its text value.
//
// JSON objects decode into Go maps without preserving field order, so any
// "first value" fallback over a LocalizedString is iteration-order dependent.
// The upstream platform does not guarantee a stable field order either.
type LocalizedString map[string]string

// Resolve returns the value for the preferred locales in order, falling back
// to an arbitrary value when none of them is present.
func (l LocalizedString) Resolve(preferred ...string) string {
	for _, locale := range preferred {
		if v, ok := l[locale]; ok && v != "" {
			return v
		}
	}
	for _, v := range l {
		if v != "" {
			return v
		}
	}
	return ""
}

// Product is the subset of the commercetools product entity the connector
// reads. Unused fields are left undeclared.
type Product struct {
	ID          string        `json:"id"`
	Version     int64         `json:"version"`
	ProductType TypeReference `json:"productType"`
	MasterData  MasterData    `json:"masterData"`
}

type TypeReference struct {
	TypeID string `json:"typeId"`
	ID     string `json:"id"`
}

// MasterData carries the two parallel representations of a product: current
// is the published state, staged holds unpublished draft edits.
type MasterData struct {
	Current ProductData `json:"current"`
	Staged  ProductData `json:"staged"`
}

type ProductData struct {
	Name          LocalizedString `json:"name"`
	MasterVariant Variant         `json:"masterVariant"`
}

type Variant struct {
	ID         int64       `json:"id"`
	SKU        string      `json:"sku"`
	Images     []Image     `json:"images"`
	Attributes []Attribute `json:"attributes"`
}

type Image struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Attribute is a name/value pair on a product variant. Value is unmarshalled
// as-is: booleans, strings and numbers all occur in practice.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// ProductType is the subset of the product-type entity the connector reads.
type ProductType struct {
	ID      string `json:"id"`
	Version int64  `json:"version"`
	Key     string `json:"key"`
	Name    string `json:"name"`
}

// CustomObject is a versioned key/value document scoped to a container.
type CustomObject struct {
	ID        string `json:"id"`
	Version   int64  `json:"version"`
	Container string `json:"container"`
	Key       string `json:"key"`
	Value     any    `json:"value"`
}

// customObjectDraft is the write shape for custom objects. Version is only
// submitted on updates, where it enforces optimistic concurrency.
type customObjectDraft struct {
	Container string `json:"container"`
	Key       string `json:"key"`
	Version   *int64 `json:"version,omitempty"`
	Value     any    `json:"value"`
}
