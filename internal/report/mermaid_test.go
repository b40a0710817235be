package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
)

func TestGenerateMermaid(t *testing.T) {
	got := GenerateMermaid(sampleResult(t), DefaultMermaidOptions())

	want := strings.Join([]string{
		"graph LR",
		"    classDef artistStyle fill:#2374ab,stroke:#1a5a8a,color:#fff,stroke-width:2px",
		`    a0["A"]`,
		`    a1["B"]`,
		`    a2["Say #quot;Hi#quot;"]`,
		"",
		"    a0 ---|2| a1",
		"    a0 ---|3| a2",
		"    a1 ---|2| a2",
		"",
		"    class a0,a1,a2 artistStyle",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestGenerateMermaid_Empty(t *testing.T) {
	assert.Equal(t, "graph LR", GenerateMermaid(&cooccur.Result{}, DefaultMermaidOptions()))
}

func TestGenerateMermaid_IncludeInit(t *testing.T) {
	got := GenerateMermaid(sampleResult(t), MermaidOptions{IncludeInit: true})
	assert.True(t, strings.HasPrefix(got, "%%{init:"))
}

func TestGenerateMermaid_MaxPairsKeepsHighestCounts(t *testing.T) {
	got := GenerateMermaid(sampleResult(t), MermaidOptions{MaxPairs: 1})
	assert.Contains(t, got, "---|3|")
	assert.NotContains(t, got, "---|2|")
	assert.NotContains(t, got, `"B"`, "artists only in dropped pairs are not drawn")
}

func TestSortedIDs_NumericOrder(t *testing.T) {
	ids := map[string]string{}
	for i := 0; i < 12; i++ {
		ids[string(rune('a'+i))] = NodeID(i)
	}
	got := sortedIDs(ids)
	assert.Equal(t, "a0", got[0])
	assert.Equal(t, "a2", got[2])
	assert.Equal(t, "a11", got[11])
}
