package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"kashbill/internal/domain"
	"kashbill/internal/domain/entities"
	"kashbill/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Catalog implements the output.TranslationSource port.
var _ output.TranslationSource = (*Catalog)(nil)

// extensions are tried in order for active.<locale>.<ext>.
var extensions = []string{"toml", "yaml", "yml", "json"}

type unmarshalFunc func(data []byte, v any) error

var decoders = map[string]unmarshalFunc{
	"toml": toml.Unmarshal,
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
	"json": json.Unmarshal,
}

// Catalog holds the typed translation tables and the go-i18n bundle built
// from the same documents. It is immutable once loaded.
type Catalog struct {
	tables map[entities.Locale]*entities.TranslationTable
	bundle *i18n.Bundle
}

// LoadEmbedded loads the translation documents shipped with the binary.
func LoadEmbedded(locales []entities.Locale) (*Catalog, error) {
	return LoadCatalog(localeFS, locales)
}

// LoadCatalog reads active.<locale>.{toml,yaml,yml,json} from fsys for every
// locale. The first locale is the bundle's default language.
func LoadCatalog(fsys fs.FS, locales []entities.Locale) (*Catalog, error) {
	if len(locales) == 0 {
		return nil, fmt.Errorf("i18n: no locales requested")
	}
	tag, err := language.Parse(locales[0].String())
	if err != nil {
		return nil, fmt.Errorf("i18n: default locale %q: %w", locales[0], err)
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	c := &Catalog{
		tables: make(map[entities.Locale]*entities.TranslationTable, len(locales)),
		bundle: bundle,
	}
	for _, locale := range locales {
		name, data, err := readDocument(fsys, locale)
		if err != nil {
			return nil, err
		}
		table, err := decodeTable(name, data)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("i18n: bundle %s: %w", name, err)
		}
		c.tables[locale] = table
	}
	return c, nil
}

func readDocument(fsys fs.FS, locale entities.Locale) (string, []byte, error) {
	for _, ext := range extensions {
		name := fmt.Sprintf("active.%s.%s", locale, ext)
		data, err := fs.ReadFile(fsys, name)
		if err == nil {
			return name, data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
	}
	return "", nil, fmt.Errorf("i18n: locale %q: %w", locale, domain.ErrTranslationsMissing)
}

func decodeTable(name string, data []byte) (*entities.TranslationTable, error) {
	ext := extOf(name)
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("i18n: %s: unsupported format %q", name, ext)
	}
	doc := map[string]any{}
	if err := decode(data, &doc); err != nil {
		return nil, fmt.Errorf("i18n: decode %s: %w", name, err)
	}
	table, err := entities.BuildTranslationTable(doc)
	if err != nil {
		return nil, fmt.Errorf("i18n: %s: %w", name, err)
	}
	return table, nil
}

func extOf(p string) string {
	return strings.TrimPrefix(path.Ext(p), ".")
}

// Table returns the table for locale.
func (c *Catalog) Table(locale entities.Locale) (*entities.TranslationTable, bool) {
	t, ok := c.tables[locale]
	return t, ok
}

// Bundle exposes the go-i18n bundle for templated rendering.
func (c *Catalog) Bundle() *i18n.Bundle {
	return c.bundle
}
