package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
)

// MermaidOptions controls Mermaid graph generation.
type MermaidOptions struct {
	MaxPairs    int  // 0 means unlimited; otherwise keep the highest-count pairs
	IncludeInit bool // include %%{init:}%% directive (for standalone .mmd files)
}

// DefaultMermaidOptions returns sensible defaults for graph generation.
func DefaultMermaidOptions() MermaidOptions {
	return MermaidOptions{MaxPairs: 200}
}

// GenerateMermaid produces a Mermaid flowchart with one node per artist that
// appears in a reported pair and one edge per pair labeled with its count.
func GenerateMermaid(result *cooccur.Result, opts MermaidOptions) string {
	pairs := topPairs(result.Pairs, opts.MaxPairs)

	// Number nodes in name order so IDs are stable across runs.
	nameSet := make(map[string]struct{})
	for _, p := range pairs {
		nameSet[p.Pair.First()] = struct{}{}
		nameSet[p.Pair.Second()] = struct{}{}
	}
	names := make([]string, 0, len(nameSet))
	for n := range nameSet {
		names = append(names, n)
	}
	sort.Strings(names)
	ids := make(map[string]string, len(names))
	for i, n := range names {
		ids[n] = NodeID(i)
	}

	var b strings.Builder
	if opts.IncludeInit {
		b.WriteString("%%{init: {'theme': 'base', 'themeVariables': {'primaryColor': '#ffffff', 'primaryBorderColor': '#cccccc', 'primaryTextColor': '#000000', 'lineColor': '#555555'}}}%%\n")
	}
	b.WriteString("graph LR")
	if len(names) > 0 {
		b.WriteString("\n    classDef artistStyle fill:#2374ab,stroke:#1a5a8a,color:#fff,stroke-width:2px")
	}

	for _, n := range names {
		b.WriteString(fmt.Sprintf("\n    %s[\"%s\"]", ids[n], EscapeLabel(n)))
	}
	if len(names) > 0 && len(pairs) > 0 {
		b.WriteString("\n")
	}
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("\n    %s ---|%d| %s", ids[p.Pair.First()], p.Count, ids[p.Pair.Second()]))
	}
	if len(names) > 0 {
		b.WriteString("\n\n    class " + strings.Join(sortedIDs(ids), ",") + " artistStyle")
	}

	return b.String()
}

// NodeID returns the Mermaid node ID for the i-th artist.
func NodeID(i int) string {
	return fmt.Sprintf("a%d", i)
}

// EscapeLabel replaces characters that break a quoted Mermaid label.
func EscapeLabel(s string) string {
	r := strings.NewReplacer(`"`, "#quot;", "<", "#lt;", ">", "#gt;")
	return r.Replace(s)
}

// topPairs keeps the limit highest-count pairs, preserving the input order
// among those kept.
func topPairs(pairs []cooccur.PairCount, limit int) []cooccur.PairCount {
	if limit <= 0 || len(pairs) <= limit {
		return pairs
	}
	idx := make([]int, len(pairs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return pairs[idx[a]].Count > pairs[idx[b]].Count
	})
	idx = idx[:limit]
	sort.Ints(idx)

	out := make([]cooccur.PairCount, len(idx))
	for i, j := range idx {
		out[i] = pairs[j]
	}
	return out
}

func sortedIDs(ids map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) < len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}
