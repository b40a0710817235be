package cooccur

// Catalog interns artist identifiers into dense integer IDs so groups and
// tables can index slices instead of hashing strings.
type Catalog struct {
	ids   map[string]int
	names []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{ids: make(map[string]int)}
}

// Intern returns the ID for name, assigning the next free one on first sight.
func (c *Catalog) Intern(name string) int {
	if id, ok := c.ids[name]; ok {
		return id
	}
	id := len(c.names)
	c.ids[name] = id
	c.names = append(c.names, name)
	return id
}

// Lookup returns the ID for name without interning it.
func (c *Catalog) Lookup(name string) (int, bool) {
	id, ok := c.ids[name]
	return id, ok
}

// Name returns the identifier for id.
func (c *Catalog) Name(id int) string {
	return c.names[id]
}

// Len is the number of distinct identifiers seen.
func (c *Catalog) Len() int {
	return len(c.names)
}
