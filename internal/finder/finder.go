// Package finder ranks file/sheet labels against a live query.
package finder

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/oakwood-commons/tabv/internal/dataset"
)

// Address identifies a sheet by position: file index, then sheet index.
type Address struct {
	File  int
	Sheet int
}

// Candidate is one jump target and the label it is matched by.
type Candidate struct {
	Address Address
	Label   string
}

// Result is a ranked candidate.
type Result struct {
	Candidate
	Score float64
}

// BuildCandidates enumerates every file×sheet pair. A loaded file with more
// than one sheet, or one named sheet, yields "file/sheet" labels. Unloaded
// and failed files, and files holding one unnamed sheet, yield just "file".
func BuildCandidates(files []*dataset.File) []Candidate {
	var out []Candidate
	for fi, f := range files {
		if !f.Loaded() || f.SingleUnnamed() {
			out = append(out, Candidate{Address: Address{File: fi}, Label: f.Name})
			continue
		}
		for si, s := range f.Sheets() {
			out = append(out, Candidate{
				Address: Address{File: fi, Sheet: si},
				Label:   f.Name + "/" + s.Name,
			})
		}
	}
	return out
}

// Finder holds the query, the candidate universe and the ranking.
type Finder struct {
	query      string
	candidates []Candidate
	results    []Result
	selected   int
}

// New returns a finder over candidates with an empty query.
func New(candidates []Candidate) *Finder {
	f := &Finder{candidates: append([]Candidate(nil), candidates...)}
	f.UpdateResults("")
	return f
}

// Query returns the current query text.
func (f *Finder) Query() string { return f.query }

// Candidates returns the candidate universe in enumeration order.
func (f *Finder) Candidates() []Candidate { return f.candidates }

// Results returns the ranked results, best first.
func (f *Finder) Results() []Result { return f.results }

// Selected returns the index of the selected result.
func (f *Finder) Selected() int { return f.selected }

// UpdateResults replaces the query and re-ranks every candidate by
// descending Similarity. Equal scores keep enumeration order, so an empty
// query lists candidates as enumerated. The selection returns to the top.
func (f *Finder) UpdateResults(query string) {
	f.query = query
	q := normalize(query)

	results := make([]Result, len(f.candidates))
	for i, c := range f.candidates {
		score := 0.0
		if len(q) > 0 {
			score = similarity(q, normalize(c.Label))
		}
		results[i] = Result{Candidate: c, Score: score}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	f.results = results
	f.selected = 0
}

// Insert appends text to the query.
func (f *Finder) Insert(text string) {
	if text == "" {
		return
	}
	f.UpdateResults(f.query + text)
}

// DeleteBackward removes the last character of the query.
func (f *Finder) DeleteBackward() {
	if f.query == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(f.query)
	f.UpdateResults(f.query[:len(f.query)-size])
}

// Clear empties the query.
func (f *Finder) Clear() { f.UpdateResults("") }

// SelectNextResult moves the selection down, wrapping to the top.
func (f *Finder) SelectNextResult() {
	n := len(f.results)
	if n == 0 {
		f.selected = 0
		return
	}
	f.selected = (f.selected + 1) % n
}

// SelectPreviousResult moves the selection up, wrapping to the bottom.
func (f *Finder) SelectPreviousResult() {
	n := len(f.results)
	if n == 0 {
		f.selected = 0
		return
	}
	f.selected = (f.selected - 1 + n) % n
}

// Resolve returns the address of the selected result.
func (f *Finder) Resolve() (Address, bool) {
	if f.selected < 0 || f.selected >= len(f.results) {
		return Address{}, false
	}
	return f.results[f.selected].Address, true
}

// MatchedIndexes returns the byte offsets within label of the characters
// matching query in order, or nil when the query is empty or does not match.
// Callers that rewrite a label for display pass the rewritten text.
func MatchedIndexes(query, label string) []int {
	if query == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{label})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// Similarity returns the normalized indel similarity of a and b in [0, 1]
// after case folding and NFC normalization: 2·LCS / (len(a)+len(b)),
// counted in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	return similarity(normalize(a), normalize(b))
}

var folder = cases.Fold()

func normalize(s string) []rune {
	return []rune(norm.NFC.String(folder.String(strings.TrimSpace(s))))
}

func similarity(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return float64(2*lcs(a, b)) / float64(total)
}

// lcs returns the length of the longest common subsequence.
func lcs(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
