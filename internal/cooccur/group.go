package cooccur

import (
	"sort"

	"golang.org/x/tools/container/intsets"
)

// Group is one playlist: the deduplicated set of catalog IDs it mentions.
type Group struct {
	members intsets.Sparse
}

// Len returns the number of distinct artists in the group.
func (g *Group) Len() int {
	return g.members.Len()
}

// Has reports whether the group contains the artist with the given ID.
func (g *Group) Has(id int) bool {
	return g.members.Has(id)
}

// IDs returns the member IDs in ascending order.
func (g *Group) IDs() []int {
	return g.members.AppendTo(nil)
}

// Store holds every accepted group together with the catalog their IDs refer
// to. It is filled once during ingestion and only read afterwards.
type Store struct {
	catalog *Catalog
	groups  []*Group
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{catalog: NewCatalog()}
}

// Add records a group built from tokens. Duplicate tokens collapse to a
// single membership. Records with fewer than two distinct tokens cannot form
// a pair and are rejected; Add reports whether the record was kept.
func (s *Store) Add(tokens []string) bool {
	distinct := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		distinct[t] = struct{}{}
	}
	if len(distinct) < 2 {
		return false
	}

	// Intern in sorted order so IDs do not depend on token order within a line.
	names := make([]string, 0, len(distinct))
	for t := range distinct {
		names = append(names, t)
	}
	sort.Strings(names)

	g := &Group{}
	for _, name := range names {
		g.members.Insert(s.catalog.Intern(name))
	}
	s.groups = append(s.groups, g)
	return true
}

// Catalog returns the identifier catalog shared by all groups.
func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// Groups returns the stored groups in insertion order.
func (s *Store) Groups() []*Group {
	return s.groups
}

// Len is the number of stored groups.
func (s *Store) Len() int {
	return len(s.groups)
}
