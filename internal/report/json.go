package report

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
)

// Artist is the JSON shape of a qualifying artist.
type Artist struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Pair is the JSON shape of a qualifying pair.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Count  int    `json:"count"`
}

// Document is the JSON report.
type Document struct {
	Threshold       int      `json:"threshold"`
	Groups          int      `json:"groups"`
	DistinctArtists int      `json:"distinctArtists"`
	Candidates      int      `json:"candidates"`
	PairsFound      int      `json:"pairsFound"`
	MergedVariants  bool     `json:"mergedCaseVariants"`
	Artists         []Artist `json:"artists"`
	Pairs           []Pair   `json:"pairs"`
}

// NewDocument converts a result into its JSON representation. Slices are
// never nil so empty results encode as [] rather than null.
func NewDocument(result *cooccur.Result) Document {
	doc := Document{
		Threshold:       result.Threshold,
		Groups:          result.Groups,
		DistinctArtists: result.DistinctArtists,
		Candidates:      result.Candidates,
		PairsFound:      result.PairsFound,
		MergedVariants:  result.MergedVariants,
		Artists:         make([]Artist, 0, len(result.Artists)),
		Pairs:           make([]Pair, 0, len(result.Pairs)),
	}
	for _, a := range result.Artists {
		doc.Artists = append(doc.Artists, Artist{Name: a.Name, Count: a.Count})
	}
	for _, p := range result.Pairs {
		doc.Pairs = append(doc.Pairs, Pair{First: p.Pair.First(), Second: p.Pair.Second(), Count: p.Count})
	}
	return doc
}

// WriteJSON encodes result as an indented JSON document.
func WriteJSON(w io.Writer, result *cooccur.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(result))
}
