package content

import (
	"context"

	"github.com/croissant676/shopizer/pkg/store"
)

// ContentType classifies a CMS entry.
type ContentType string

const (
	TypeBox     ContentType = "BOX"
	TypeSection ContentType = "SECTION"
	TypePage    ContentType = "PAGE"
)

// LandingPageCode is the content code whose descriptor overrides the default
// page metadata for the storefront landing page.
const LandingPageCode = "LANDING_PAGE"

// Content is a CMS entry with its localized description.
type Content struct {
	ID          int64              `json:"id"`
	Code        string             `json:"code"`
	Type        ContentType        `json:"type"`
	Visible     bool               `json:"visible"`
	Description ContentDescription `json:"description"`
}

// ContentDescription is the localized face of a CMS entry.
type ContentDescription struct {
	Name               string `json:"name"`
	SEUrl              string `json:"se_url,omitempty"`
	Title              string `json:"title,omitempty"`
	MetatagDescription string `json:"metatag_description,omitempty"`
	MetatagKeywords    string `json:"metatag_keywords,omitempty"`
	LanguageCode       string `json:"language_code"`
}

// PageInformation is the metadata handed to page rendering.
type PageInformation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// VisibleByCode indexes content entries by code, excluding invisible ones.
// This is the shape page rendering consumes for boxes and sections.
func VisibleByCode(items []Content) map[string]ContentDescription {
	m := make(map[string]ContentDescription, len(items))
	for _, item := range items {
		if !item.Visible {
			continue
		}
		m[item.Code] = item.Description
	}
	return m
}

// Service loads CMS content for a store.
type Service interface {
	// ListByType lists the store's content entries of the given types in the
	// given language.
	ListByType(ctx context.Context, types []ContentType, st *store.Store, lang string) ([]Content, error)

	// ListNamesByType lists just the localized descriptions of the store's
	// content entries of the given types.
	ListNamesByType(ctx context.Context, types []ContentType, st *store.Store, lang string) ([]ContentDescription, error)

	// GetByLanguage fetches one content entry localized to the given
	// language. Returns ErrContentNotFound when the entry does not exist.
	GetByLanguage(ctx context.Context, id int64, lang string) (*Content, error)
}
