// Package index holds the name -> locators mapping that the crawlers produce
// and the search engine reads.
//
// An Index is immutable once built. Crawlers fill a Builder, call Build, and
// publish the result through a Holder; readers take one snapshot per call and
// never observe a partially populated index.
package index

// Kind identifies which index a file belongs to.
type Kind string

const (
	// KindFile is the file-name index built by the filesystem crawl.
	KindFile Kind = "file"
	// KindApp is the application-name index built by application discovery.
	KindApp Kind = "app"
)

// FileName returns the on-disk file name used for this kind.
func (k Kind) FileName() string {
	return string(k) + "_index.yaml"
}

// Entry is one candidate name and every locator discovered for it.
type Entry struct {
	Name     string
	Locators []string
}

// Index is an immutable, insertion-ordered name -> locators mapping.
type Index struct {
	entries []Entry
	byName  map[string]int
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{byName: map[string]int{}}
}

// Len returns the number of distinct names.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Entries returns the entries in insertion order.
// The returned slice is shared with the index and must not be modified.
func (x *Index) Entries() []Entry {
	if x == nil {
		return nil
	}
	return x.entries
}

// Lookup returns the locators stored for name.
func (x *Index) Lookup(name string) ([]string, bool) {
	if x == nil {
		return nil, false
	}
	i, ok := x.byName[name]
	if !ok {
		return nil, false
	}
	return x.entries[i].Locators, true
}

// Stats summarises an index.
type Stats struct {
	Names    int `json:"names"`
	Locators int `json:"locators"`
}

// Stats counts names and locators.
func (x *Index) Stats() Stats {
	s := Stats{Names: x.Len()}
	for _, e := range x.Entries() {
		s.Locators += len(e.Locators)
	}
	return s
}

// Builder accumulates entries during a crawl. It is not safe for concurrent use;
// each crawl goroutine owns its own Builder.
type Builder struct {
	firstWins bool
	entries   []Entry
	byName    map[string]int
	built     bool
}

// NewBuilder returns a builder that keeps every locator in discovery order,
// duplicates included.
func NewBuilder() *Builder {
	return &Builder{byName: map[string]int{}}
}

// NewFirstWinsBuilder returns a builder that keeps only the first locator
// added for each name and drops later ones.
func NewFirstWinsBuilder() *Builder {
	b := NewBuilder()
	b.firstWins = true
	return b
}

// Add appends locator under name. Empty names are ignored.
// It reports whether the locator was kept.
func (b *Builder) Add(name, locator string) bool {
	if b.built {
		panic("index: Add called after Build")
	}
	if name == "" {
		return false
	}
	if i, ok := b.byName[name]; ok {
		if b.firstWins {
			return false
		}
		b.entries[i].Locators = append(b.entries[i].Locators, locator)
		return true
	}
	b.byName[name] = len(b.entries)
	b.entries = append(b.entries, Entry{Name: name, Locators: []string{locator}})
	return true
}

// Merge appends every entry of other in other's order, applying the
// builder's duplicate policy.
func (b *Builder) Merge(other *Index) {
	for _, e := range other.Entries() {
		for _, loc := range e.Locators {
			b.Add(e.Name, loc)
		}
	}
}

// Len returns the number of names added so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Build freezes the builder into an Index. The builder cannot be used afterwards.
func (b *Builder) Build() *Index {
	b.built = true
	return &Index{entries: b.entries, byName: b.byName}
}
