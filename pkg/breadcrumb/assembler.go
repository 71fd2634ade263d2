package breadcrumb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/croissant676/shopizer/pkg/catalog"
	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/session"
)

const (
	// SessionKeyTrail is the session key holding the breadcrumb trail.
	SessionKeyTrail = "breadcrumb"

	// HomeURL is the fixed storefront landing URL for the home step.
	HomeURL = "/shop"

	// HomeMessageKey localizes the home step label.
	HomeMessageKey = "menu.home"
)

// Translator localizes message keys; satisfied by i18n.Translator.
type Translator interface {
	T(lang, key string) string
}

// Assembler keeps the session trail consistent with the request language.
type Assembler struct {
	products   catalog.ProductService
	categories catalog.CategoryService
	pages      content.Service
	translator Translator
	logger     *slog.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithLogger sets the logger for rebuild failures.
func WithLogger(logger *slog.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates a trail assembler over the given lookup services.
func NewAssembler(products catalog.ProductService, categories catalog.CategoryService, pages content.Service, translator Translator, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		products:   products,
		categories: categories,
		pages:      pages,
		translator: translator,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns the trail for this request. A session without a trail
// gets a fresh single-step home trail. A trail already labeled in the
// request language is returned untouched. A language switch rebuilds every
// step against the new language; steps whose entity disappeared are dropped,
// and a rebuild failure keeps the previous trail for this request.
func (a *Assembler) Assemble(ctx context.Context, sess *session.Session, lang string) *Trail {
	trail, ok := session.Decode[Trail](sess, SessionKeyTrail)
	if !ok {
		fresh := &Trail{
			LanguageCode: lang,
			Items:        []Item{a.homeItem(lang)},
		}
		sess.Set(SessionKeyTrail, fresh)
		return fresh
	}

	if trail.LanguageCode == lang {
		return &trail
	}

	rebuilt, err := a.rebuild(ctx, &trail, lang)
	if err != nil {
		a.logger.ErrorContext(ctx, "breadcrumb rebuild failed, keeping previous trail",
			"from", trail.LanguageCode, "to", lang, "error", err)
		return &trail
	}

	sess.Set(SessionKeyTrail, rebuilt)
	return rebuilt
}

// rebuild re-resolves every step against the new language. Lookup misses
// drop the step; any other lookup error aborts the rebuild.
func (a *Assembler) rebuild(ctx context.Context, trail *Trail, lang string) (*Trail, error) {
	items := make([]Item, 0, len(trail.Items))

	for _, item := range trail.Items {
		switch item.Type {
		case TypeHome:
			items = append(items, a.homeItem(lang))

		case TypeProduct:
			p, err := a.products.ProductForLocale(ctx, item.ID, lang)
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("product %d: %w", item.ID, err)
			}
			items = append(items, Item{Type: TypeProduct, ID: p.ID, Label: p.Name, URL: p.SEUrl})

		case TypeCategory:
			c, err := a.categories.ByLanguage(ctx, item.ID, lang)
			if errors.Is(err, catalog.ErrCategoryNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("category %d: %w", item.ID, err)
			}
			items = append(items, Item{Type: TypeCategory, ID: c.ID, Label: c.Name, URL: c.SEUrl})

		case TypePage:
			pg, err := a.pages.GetByLanguage(ctx, item.ID, lang)
			if errors.Is(err, content.ErrContentNotFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", item.ID, err)
			}
			items = append(items, Item{Type: TypePage, ID: pg.ID, Label: pg.Description.Name, URL: pg.Description.SEUrl})

		default:
			// Unknown step kinds are dropped rather than carried stale.
		}
	}

	return &Trail{LanguageCode: lang, Items: items}, nil
}

func (a *Assembler) homeItem(lang string) Item {
	return Item{
		Type:  TypeHome,
		Label: a.translator.T(lang, HomeMessageKey),
		URL:   HomeURL,
	}
}
