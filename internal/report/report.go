package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/olehluchkiv/artistpairs/internal/cooccur"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatMermaid Format = "mermaid"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatMermaid:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (valid: text, json, mermaid)", s)
	}
}

// Write renders result to w in the given format.
func Write(w io.Writer, result *cooccur.Result, format Format) error {
	switch format {
	case FormatText:
		return WriteText(w, result)
	case FormatJSON:
		return WriteJSON(w, result)
	case FormatMermaid:
		_, err := io.WriteString(w, GenerateMermaid(result, DefaultMermaidOptions())+"\n")
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteText prints the summary, the qualifying artists and the qualifying
// pairs, one per line.
func WriteText(w io.Writer, result *cooccur.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "There are %d valid artist lists.\n", result.Groups)
	fmt.Fprintf(bw, "Finding artists in at least %d lists...\n", result.Threshold)
	for _, a := range result.Artists {
		fmt.Fprintf(bw, "%s: %d\n", a.Name, a.Count)
	}
	fmt.Fprintf(bw, "There are %d artists in at least %d lists.\n", result.Candidates, result.Threshold)
	fmt.Fprintf(bw, "There are %d artist pairs in at least %d lists.\n", len(result.Pairs), result.Threshold)
	if result.MergedVariants {
		fmt.Fprintln(bw, "Pair counts merge case variants of a name, shown under its first spelling.")
	}
	for _, p := range result.Pairs {
		fmt.Fprintf(bw, "%s: %d\n", p.Pair, p.Count)
	}

	return bw.Flush()
}
