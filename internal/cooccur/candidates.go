package cooccur

import (
	"sort"
)

// CandidateSet is the set of identifiers whose group frequency reaches the
// threshold. Candidates that differ only in case share a class; classes are
// numbered in case-folded order and each is represented by its smallest
// member in exact string order. A CandidateSet is immutable and safe for
// concurrent readers.
type CandidateSet struct {
	threshold int
	catalog   *Catalog
	classOf   []int // catalog ID -> class index, -1 when not a candidate
	classes   []string
	folded    []string
	members   int
}

// NewCandidateSet keeps every identifier in freq whose count is at least
// threshold. A threshold below 1 is a ConfigurationError.
func NewCandidateSet(freq *FrequencyTable, threshold int) (*CandidateSet, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	type candidate struct {
		id     int
		name   string
		folded string
	}
	var kept []candidate
	for id, n := range freq.counts {
		if n < threshold {
			continue
		}
		name := freq.catalog.Name(id)
		kept = append(kept, candidate{id: id, name: name, folded: fold(name)})
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].folded != kept[j].folded {
			return kept[i].folded < kept[j].folded
		}
		return kept[i].name < kept[j].name
	})

	cs := &CandidateSet{
		threshold: threshold,
		catalog:   freq.catalog,
		classOf:   make([]int, len(freq.counts)),
		members:   len(kept),
	}
	for i := range cs.classOf {
		cs.classOf[i] = -1
	}
	for i, c := range kept {
		if i == 0 || c.folded != kept[i-1].folded {
			cs.classes = append(cs.classes, c.name)
			cs.folded = append(cs.folded, c.folded)
		}
		cs.classOf[c.id] = len(cs.classes) - 1
	}
	return cs, nil
}

// Threshold is the support threshold the set was built with.
func (cs *CandidateSet) Threshold() int {
	return cs.threshold
}

// Len is the number of candidate identifiers.
func (cs *CandidateSet) Len() int {
	return cs.members
}

// MergesVariants reports whether some candidate class holds more than one
// spelling of the same case-folded name.
func (cs *CandidateSet) MergesVariants() bool {
	return len(cs.classes) < cs.members
}

// Empty reports whether no identifier reached the threshold.
func (cs *CandidateSet) Empty() bool {
	return cs.members == 0
}

// class returns the class index of a catalog ID, or -1.
func (cs *CandidateSet) class(id int) int {
	return cs.classOf[id]
}

// pair builds the Pair for two class indices with i < j.
func (cs *CandidateSet) pair(i, j int) Pair {
	return Pair{
		first:  cs.classes[i],
		second: cs.classes[j],
		key:    PairKey{A: cs.folded[i], B: cs.folded[j]},
	}
}
