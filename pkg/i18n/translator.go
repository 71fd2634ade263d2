package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Translator holds flat message catalogs per language and answers message
// lookups with default-language fallback.
type Translator struct {
	mu          sync.RWMutex
	catalogs    map[string]map[string]string
	defaultLang string
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithDefaultLanguage sets the fallback language for missing messages.
func WithDefaultLanguage(lang string) TranslatorOption {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// NewTranslator creates an empty translator.
func NewTranslator(opts ...TranslatorOption) *Translator {
	t := &Translator{
		catalogs:    make(map[string]map[string]string),
		defaultLang: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AddCatalog merges messages for a language.
func (t *Translator) AddCatalog(lang string, messages map[string]string) {
	lang = strings.ToLower(lang)

	t.mu.Lock()
	defer t.mu.Unlock()

	catalog, ok := t.catalogs[lang]
	if !ok {
		catalog = make(map[string]string, len(messages))
		t.catalogs[lang] = catalog
	}
	for k, v := range messages {
		catalog[k] = v
	}
}

// LoadFS loads every *.json, *.yaml and *.yml catalog in dir. The file stem
// names the language: "en.yaml" feeds the "en" catalog.
func (t *Translator) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("i18n: read catalog dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := strings.ToLower(path.Ext(name))
		lang := strings.TrimSuffix(name, path.Ext(name))

		buf, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("i18n: read catalog %s: %w", name, err)
		}

		messages := make(map[string]string)
		switch ext {
		case ".json":
			if err := json.Unmarshal(buf, &messages); err != nil {
				return fmt.Errorf("i18n: parse catalog %s: %w", name, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(buf, &messages); err != nil {
				return fmt.Errorf("i18n: parse catalog %s: %w", name, err)
			}
		default:
			continue
		}

		t.AddCatalog(lang, messages)
	}
	return nil
}

// T resolves a message key in the given language, falling back to the
// default language and finally to the key itself so templates never render
// an empty label.
func (t *Translator) T(lang, key string) string {
	lang = strings.ToLower(lang)

	t.mu.RLock()
	defer t.mu.RUnlock()

	if catalog, ok := t.catalogs[lang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if catalog, ok := t.catalogs[t.defaultLang]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	return key
}

// Languages lists the languages with a loaded catalog.
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.catalogs))
	for lang := range t.catalogs {
		langs = append(langs, lang)
	}
	return langs
}
