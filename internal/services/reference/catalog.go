// File: internal/services/reference/catalog.go
package reference

import (
	"os"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/tidwall/gjson"
)

// Catalog is the read-only label -> URL table. Entries keep the order in which
// their keys first appear in the source document. A Catalog is never mutated
// after construction, so it is safe for concurrent readers.
type Catalog struct {
	entries []domain.ReferenceEntry
	index   map[string]int
}

// NewCatalog builds a catalog from entries in order. A repeated key keeps its
// first position and takes the later URL.
func NewCatalog(entries []domain.ReferenceEntry) *Catalog {
	c := &Catalog{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		c.put(e.Key, e.URL)
	}
	return c
}

// EmptyCatalog returns a catalog with no entries.
func EmptyCatalog() *Catalog {
	return NewCatalog(nil)
}

func (c *Catalog) put(key, url string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].URL = url
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, domain.ReferenceEntry{Key: key, URL: url})
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []domain.ReferenceEntry {
	if c == nil {
		return nil
	}
	out := make([]domain.ReferenceEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the URL stored under key.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.entries[i].URL, true
}

// ParseCatalog decodes a JSON object of label -> URL pairs. Values that are not
// strings are skipped and reported through skipped.
func ParseCatalog(data []byte) (catalog *Catalog, skipped []string, err error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, &CatalogLoadError{Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, &CatalogLoadError{Message: "catalog must be a JSON object"}
	}

	catalog = EmptyCatalog()
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			skipped = append(skipped, key.String())
			return true
		}
		catalog.put(key.String(), value.String())
		return true
	})
	return catalog, skipped, nil
}

// LoadCatalog reads and parses the catalog file at path.
func LoadCatalog(path string) (*Catalog, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &CatalogLoadError{Path: path, Message: "could not read catalog file", Cause: err}
	}
	catalog, skipped, err := ParseCatalog(data)
	if err != nil {
		if loadErr, ok := err.(*CatalogLoadError); ok {
			loadErr.Path = path
		}
		return nil, nil, err
	}
	return catalog, skipped, nil
}

// LoadCatalogOrEmpty loads the catalog and never fails: a missing or broken
// file yields an empty catalog and a warning.
func LoadCatalogOrEmpty(path string, logger Logger) *Catalog {
	catalog, skipped, err := LoadCatalog(path)
	if err != nil {
		logger.Warn("Could not load reference links, continuing with an empty catalog", "path", path, "error", err)
		return EmptyCatalog()
	}
	if len(skipped) > 0 {
		logger.Warn("Skipped catalog entries with non-string URLs", "path", path, "keys", skipped)
	}
	logger.Info("Reference catalog loaded", "path", path, "entries", catalog.Len())
	return catalog
}
