package engine

import (
	"sort"
	"strconv"
	"strings"
)

// Catalog the ordered set of bundles observed under one channel prefix.
// Bundle timestamps are distinct and sorted descending numerically, so
// index 0 is the newest bundle.
type Catalog struct {
	prefix  string
	bundles []string
	objects []string
}

// BuildCatalog derives a catalog from a flat object listing. Names that do
// not sit under the prefix or whose first path segment is not a decimal
// timestamp are ignored; duplicate timestamps collapse to one entry. The
// operation is total: an empty listing yields an empty catalog.
func BuildCatalog(objects []string, prefix string) *Catalog {
	seen := make(map[string]bool)
	var bundles []string
	for _, name := range objects {
		rel, ok := strings.CutPrefix(name, prefix+"/")
		if !ok {
			continue
		}
		ts, _, _ := strings.Cut(rel, "/")
		if ts == "" || seen[ts] {
			continue
		}
		if _, err := strconv.ParseInt(ts, 10, 64); err != nil {
			continue
		}
		seen[ts] = true
		bundles = append(bundles, ts)
	}

	// newest first
	sort.Slice(bundles, func(i, j int) bool {
		a, _ := strconv.ParseInt(bundles[i], 10, 64)
		b, _ := strconv.ParseInt(bundles[j], 10, 64)
		return a > b
	})

	return &Catalog{prefix: prefix, bundles: bundles, objects: objects}
}

// Bundles returns all bundle timestamps, newest first.
func (c *Catalog) Bundles() []string {
	return c.bundles
}

// Len returns the number of bundles.
func (c *Catalog) Len() int {
	return len(c.bundles)
}

// IsEmpty reports whether the channel holds no bundles.
func (c *Catalog) IsEmpty() bool {
	return len(c.bundles) == 0
}

// Latest returns the newest bundle timestamp, or "" for an empty catalog.
func (c *Catalog) Latest() string {
	return c.At(0)
}

// At returns the bundle at catalog position i, or "" when out of range.
func (c *Catalog) At(i int) string {
	if i < 0 || i >= len(c.bundles) {
		return ""
	}
	return c.bundles[i]
}

// IndexOf returns the catalog position of a timestamp, or -1.
func (c *Catalog) IndexOf(ts string) int {
	for i, b := range c.bundles {
		if b == ts {
			return i
		}
	}
	return -1
}

// FilesUnder returns the relative paths of all objects directly or
// indirectly under one bundle.
func (c *Catalog) FilesUnder(bundle string) []string {
	bundlePrefix := c.prefix + "/" + bundle + "/"
	var files []string
	for _, name := range c.objects {
		rel, ok := strings.CutPrefix(name, bundlePrefix)
		if !ok || rel == "" || strings.HasSuffix(rel, "/") {
			continue
		}
		files = append(files, rel)
	}
	return files
}
