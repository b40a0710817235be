package cooccur

import (
	"golang.org/x/tools/container/intsets"
)

// enumerator walks the candidate pairs of one group at a time, reusing its
// scratch set and buffer between groups. It is not safe for concurrent use;
// each worker owns one.
type enumerator struct {
	cs    *CandidateSet
	local intsets.Sparse
	buf   []int
}

// each calls fn(i, j) with i < j for every unordered pair of candidate
// classes present in g. The group's candidates are collapsed to class indices
// and visited in ascending order; position i is only paired with positions
// after it, so each pair is produced exactly once.
func (e *enumerator) each(g *Group, fn func(i, j int)) {
	e.local.Clear()
	for _, id := range g.IDs() {
		if c := e.cs.class(id); c >= 0 {
			e.local.Insert(c)
		}
	}
	if e.local.Len() < 2 {
		return
	}
	e.buf = e.local.AppendTo(e.buf[:0])
	for i := 0; i < len(e.buf)-1; i++ {
		for j := i + 1; j < len(e.buf); j++ {
			fn(e.buf[i], e.buf[j])
		}
	}
}
