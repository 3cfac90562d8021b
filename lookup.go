package isv

import (
	"regexp"
	"sort"
)

// reWord matches a single word token in any script.
var reWord = regexp.MustCompile(`\p{L}[\p{L}\p{M}]*`)

// Analysis is one reading of a surface form.
type Analysis struct {
	// Lemma is the exported spelling of the headword.
	Lemma string `json:"lemma"`
	// Headword is the source spelling.
	Headword string       `json:"headword"`
	POS      PartOfSpeech `json:"-"`
	// Tags are all tags of the form, aliased and in TagSet order.
	Tags []string `json:"tags"`
}

// TokenResult holds the readings of one token of a text.
type TokenResult struct {
	Token    string     `json:"token"`
	Analyses []Analysis `json:"analyses"`
}

// Index answers form and headword queries over a built Dictionary. It is
// read-only and safe for concurrent use.
type Index struct {
	ts    *TagSet
	forms map[string][]Analysis
	// lemmas maps exported headword spelling → lemmas.
	lemmas map[string][]*Lemma
	ids    map[*Lemma]int
}

// NewIndex indexes every exportable lemma of d.
func NewIndex(d *Dictionary, ts *TagSet) *Index {
	x := &Index{
		ts:     ts,
		forms:  make(map[string][]Analysis),
		lemmas: make(map[string][]*Lemma),
		ids:    make(map[*Lemma]int),
	}
	for i, l := range d.Lemmas() {
		if len(l.common) == 0 {
			continue
		}
		head := outputText(l.Headword)
		x.lemmas[head] = append(x.lemmas[head], l)
		x.ids[l] = i + 1

		seen := make(map[string]bool)
		for _, f := range l.Forms() {
			key := outputText(f.Surface)
			an := Analysis{
				Lemma:    head,
				Headword: l.Headword,
				POS:      l.POS(),
				Tags:     aliases(ts, f.Tags),
			}
			// one reading per (form, tags) pair within a lemma
			sig := key + "|" + f.Tags.Signature()
			if seen[sig] {
				continue
			}
			seen[sig] = true
			x.forms[key] = append(x.forms[key], an)
		}
	}
	return x
}

func aliases(ts *TagSet, tags Tags) []string {
	sorted := ts.SortTags(tags)
	for i, t := range sorted {
		sorted[i] = ts.Alias(t)
	}
	return sorted
}

// Analyze returns the readings of form, normalising it first.
func (x *Index) Analyze(form string) []Analysis {
	return append([]Analysis(nil), x.forms[Transliterate(form)]...)
}

// AnalyzeText splits text into word tokens and analyses each.
func (x *Index) AnalyzeText(text string) []TokenResult {
	tokens := reWord.FindAllString(text, -1)
	out := make([]TokenResult, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenResult{Token: tok, Analyses: x.Analyze(tok)})
	}
	return out
}

// Paradigm renders every lemma whose headword spells like word, in export
// order.
func (x *Index) Paradigm(word string) []*LemmaNode {
	lemmas := x.lemmas[Transliterate(word)]
	out := make([]*LemmaNode, 0, len(lemmas))
	for _, l := range lemmas {
		if node, ok := l.Node(x.ids[l], x.ts); ok {
			out = append(out, node)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Grammemes describes the taxonomy the index renders tags with.
func (x *Index) Grammemes() []GrammemeNode {
	return GrammemeNodes(x.ts)
}

// Size is the number of distinct indexed surface spellings.
func (x *Index) Size() int {
	return len(x.forms)
}
