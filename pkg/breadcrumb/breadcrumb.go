package breadcrumb

// ItemType tags a breadcrumb step with the kind of entity it points at.
type ItemType string

const (
	TypeHome     ItemType = "HOME"
	TypeProduct  ItemType = "PRODUCT"
	TypeCategory ItemType = "CATEGORY"
	TypePage     ItemType = "PAGE"
)

// Item is one step of the trail. ID refers to the owning entity and is zero
// for the home step.
type Item struct {
	Type  ItemType `json:"type"`
	ID    int64    `json:"id,omitempty"`
	Label string   `json:"label"`
	URL   string   `json:"url"`
}

// Trail is the visitor's navigation history, labeled in a single language.
type Trail struct {
	LanguageCode string `json:"language_code"`
	Items        []Item `json:"items"`
}
