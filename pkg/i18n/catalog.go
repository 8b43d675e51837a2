// Package i18n translates raw validation messages into display-ready text
// using locale catalogs loaded from YAML documents. A catalog produces
// translation functions the validation engine consumes directly; messages
// without a catalog entry pass through unchanged.
package i18n

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalid/pkg/validate"
)

// MissingHandler controls the string returned when a message has no catalog
// entry for the requested locale chain.
type MissingHandler func(locale, message string) string

// Catalog stores display texts keyed by locale and raw message. Lookups walk
// a fallback chain: exact locale, base language ("fr-CA" falls back to
// "fr"), then the catalog's default locale.
type Catalog struct {
	mu       sync.RWMutex
	fallback string
	locales  map[string]map[string]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		locales: make(map[string]map[string]string),
	}
}

// SetFallback sets the default locale consulted when neither the requested
// locale nor its base language has an entry.
func (c *Catalog) SetFallback(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallback = normalizeLocale(locale)
}

// Add merges messages into a locale, later entries winning on collisions.
func (c *Catalog) Add(locale string, messages map[string]string) {
	key := normalizeLocale(locale)
	if key == "" || len(messages) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket := c.locales[key]
	if bucket == nil {
		bucket = make(map[string]string, len(messages))
		c.locales[key] = bucket
	}
	for raw, display := range messages {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		bucket[raw] = display
	}
}

type catalogDocument struct {
	Locale   string            `yaml:"locale"`
	Fallback string            `yaml:"fallback"`
	Messages map[string]string `yaml:"messages"`
}

// Load reads one YAML catalog document from r and merges it in. The document
// declares its locale, an optional fallback locale, and a message map.
func (c *Catalog) Load(r io.Reader) error {
	if r == nil {
		return errors.New("i18n: reader is required")
	}

	var doc catalogDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("i18n: decode catalog: %w", err)
	}
	if normalizeLocale(doc.Locale) == "" {
		return errors.New("i18n: catalog document needs a locale")
	}

	c.Add(doc.Locale, doc.Messages)
	if doc.Fallback != "" {
		c.SetFallback(doc.Fallback)
	}
	return nil
}

// LoadFile reads a YAML catalog document from disk.
func (c *Catalog) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("i18n: open catalog %q: %w", path, err)
	}
	defer file.Close()

	if err := c.Load(file); err != nil {
		return fmt.Errorf("i18n: catalog %q: %w", path, err)
	}
	return nil
}

// LoadFS loads every path matching the glob patterns from fsys, so embedded
// catalog sets can be merged in one call.
func (c *Catalog) LoadFS(fsys fs.FS, patterns ...string) error {
	if fsys == nil {
		return errors.New("i18n: filesystem is required")
	}
	for _, pattern := range patterns {
		paths, err := fs.Glob(fsys, pattern)
		if err != nil {
			return fmt.Errorf("i18n: glob %q: %w", pattern, err)
		}
		for _, path := range paths {
			file, err := fsys.Open(path)
			if err != nil {
				return fmt.Errorf("i18n: open catalog %q: %w", path, err)
			}
			err = c.Load(file)
			file.Close()
			if err != nil {
				return fmt.Errorf("i18n: catalog %q: %w", path, err)
			}
		}
	}
	return nil
}

// Translate resolves a raw message for a locale, reporting whether any entry
// in the fallback chain matched.
func (c *Catalog) Translate(locale, message string) (string, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range localeChain(normalizeLocale(locale), c.fallback) {
		if bucket, ok := c.locales[candidate]; ok {
			if display, ok := bucket[message]; ok {
				return display, true
			}
		}
	}
	return "", false
}

// FuncOption configures the translation function built by Func.
type FuncOption func(*funcConfig)

type funcConfig struct {
	onMissing MissingHandler
	sanitize  bool
}

// WithMissingHandler customises the behaviour for untranslated messages. The
// default returns the raw message unchanged.
func WithMissingHandler(handler MissingHandler) FuncOption {
	return func(cfg *funcConfig) {
		if handler != nil {
			cfg.onMissing = handler
		}
	}
}

// WithSanitizer strips markup from display messages before returning them.
// Useful when catalog entries are operator-edited and end up in HTML.
func WithSanitizer() FuncOption {
	return func(cfg *funcConfig) {
		cfg.sanitize = true
	}
}

// Func builds a validate.TranslateFunc bound to a locale. Untranslated
// messages pass through the missing handler (identity by default), keeping
// the engine's identity-when-absent contract.
func (c *Catalog) Func(locale string, options ...FuncOption) validate.TranslateFunc {
	cfg := funcConfig{
		onMissing: func(_, message string) string { return message },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	return func(message string) string {
		out, ok := c.Translate(locale, message)
		if !ok {
			out = cfg.onMissing(locale, message)
		}
		if cfg.sanitize {
			out = Sanitize(out)
		}
		return out
	}
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(locale, "_", "-")))
}

// localeChain lists lookup candidates in priority order, deduplicated:
// requested locale, its base language, then the catalog fallback.
func localeChain(locale, fallback string) []string {
	var chain []string
	push := func(candidate string) {
		if candidate == "" {
			return
		}
		for _, existing := range chain {
			if existing == candidate {
				return
			}
		}
		chain = append(chain, candidate)
	}

	push(locale)
	if idx := strings.IndexRune(locale, '-'); idx > 0 {
		push(locale[:idx])
	}
	push(fallback)
	return chain
}
