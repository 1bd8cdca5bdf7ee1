// Package locale serves localized strings from gettext .po catalogs.
package locale

import (
	"embed"
	"fmt"

	"github.com/leonelquinteros/gotext"
)

//go:embed po/*.po
var catalogs embed.FS

// DefaultLanguage is the catalog used when none is requested.
const DefaultLanguage = "en"

// Catalog looks up localized strings by message id. Unknown ids are
// returned unchanged.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// New parses a .po document.
func New(lang string, data []byte) *Catalog {
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{lang: lang, po: po}
}

// Load returns the embedded catalog for lang.
func Load(lang string) (*Catalog, error) {
	data, err := catalogs.ReadFile("po/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("locale: load %s: %w", lang, err)
	}
	return New(lang, data), nil
}

// Language returns the catalog's language tag.
func (c *Catalog) Language() string {
	return c.lang
}

// String returns the translation of id.
func (c *Catalog) String(id string) string {
	return c.po.Get(id)
}
