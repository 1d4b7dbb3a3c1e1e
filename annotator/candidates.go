package annotator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ParseCandidates decodes a raw 候选项 value into its (text, frequency) pairs.
// The grammar is deliberately lenient: "," directly follows the candidate text,
// every token loses its first and last character unconditionally, and tokens
// without a comma after stripping vanish instead of erroring. Real-world rows
// contain malformed entries and the annotation flow must survive them.
func ParseCandidates(raw string) []Candidate {
	raw = cleanCell(raw)
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, ", ", ",")
	parts := strings.Split(raw, " ")
	out := make([]Candidate, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		runes := []rune(part)
		if len(runes) < 2 {
			continue
		}
		stripped := string(runes[1 : len(runes)-1])
		text, freq, ok := strings.Cut(stripped, ",")
		if !ok {
			continue
		}
		out = append(out, Candidate{
			Text: strings.TrimSpace(text),
			Freq: strings.TrimSpace(freq),
		})
	}
	return out
}

// SortCandidates orders candidates for display: descending by frequency, with
// the original encoding order preserved among equal frequencies. A frequency
// that does not parse as a base-10 integer makes the ordering undefined, so it
// is surfaced instead of masked.
func SortCandidates(cands []Candidate) ([]Candidate, error) {
	type weighted struct {
		cand Candidate
		freq int
	}
	ws := make([]weighted, len(cands))
	for i, c := range cands {
		n, err := strconv.Atoi(c.Freq)
		if err != nil {
			return nil, fmt.Errorf("candidate %q: frequency %q is not an integer", c.Text, c.Freq)
		}
		ws[i] = weighted{cand: c, freq: n}
	}
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].freq > ws[j].freq })
	out := make([]Candidate, len(ws))
	for i, w := range ws {
		out[i] = w.cand
	}
	return out, nil
}
