package isv

import (
	"bytes"
	"encoding/json"
	"errors"
	"iter"
	"sort"
)

// Inflection is one decoded form of an inflection table.
type Inflection struct {
	Surface string
	Tags    Tags
}

// Entry is the input of a generator: a headword, its raw inflection table
// and the tags parsed from its part-of-speech descriptor.
type Entry struct {
	Headword string
	Table    json.RawMessage
	Tags     Tags
}

// Generator decodes the inflection table of one part of speech into a
// deterministic sequence of forms. A structural problem is yielded as the
// final element, with a zero Inflection.
type Generator func(e Entry) iter.Seq2[Inflection, error]

var generators = map[PartOfSpeech]Generator{
	POSAdjective: adjectiveForms,
	POSNoun:      nounForms,
	POSVerb:      verbForms,
	POSNumeral:   lemmaFormOnly,
	POSPronoun:   lemmaFormOnly,
}

// GeneratorFor returns the generator of p. Parts of speech without a
// modelled table shape get one that yields nothing, leaving the lemma form
// as the only form.
func GeneratorFor(p PartOfSpeech) Generator {
	if g, ok := generators[p]; ok {
		return g
	}
	return lemmaFormOnly
}

// Expand runs the generator matching the entry's tags. Plain-string tables
// (irregular or indeclinable entries) yield nothing. Structural errors carry
// the headword.
func Expand(e Entry) iter.Seq2[Inflection, error] {
	g := GeneratorFor(InferPOS(e.Tags))
	if isPlainTable(e.Table) {
		g = lemmaFormOnly
	}
	return func(yield func(Inflection, error) bool) {
		for inf, err := range g(e) {
			if err != nil {
				var se *StructuralError
				if errors.As(err, &se) && se.Headword == "" {
					se.Headword = e.Headword
				}
				yield(Inflection{}, err)
				return
			}
			if !yield(inf, nil) {
				return
			}
		}
	}
}

// isPlainTable reports whether raw is a JSON string or null rather than an
// object.
func isPlainTable(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || raw[0] == '"' || bytes.Equal(raw, []byte("null"))
}

// lemmaFormOnly yields no forms: the lemma form, added with the lemma, is
// the whole paradigm. Numerals and pronouns go through here: their tables
// are not decoded.
func lemmaFormOnly(Entry) iter.Seq2[Inflection, error] {
	return func(func(Inflection, error) bool) {}
}

// nounColumns names the cells of a noun table row.
var nounColumns = []string{"singular", "plural"}

// nounForms decodes {case: [singular, plural]}; null cells are skipped.
func nounForms(e Entry) iter.Seq2[Inflection, error] {
	return func(yield func(Inflection, error) bool) {
		var table map[string][]*string
		if err := json.Unmarshal(e.Table, &table); err != nil {
			yield(Inflection{}, structural("noun", "decode table: %v", err))
			return
		}
		for _, cas := range orderedCases(table) {
			row := table[cas]
			for i, column := range nounColumns {
				if i >= len(row) || row[i] == nil {
					continue
				}
				if !yield(Inflection{Surface: *row[i], Tags: e.Tags.With(cas, column)}, nil) {
					return
				}
			}
		}
	}
}

// caseOrder fixes the iteration order of case-keyed tables.
var caseOrder = []string{"nom", "gen", "dat", "acc", "ins", "loc", "voc"}

// orderedCases returns the keys of a case-keyed table: the known cases in
// caseOrder, then any others lexically.
func orderedCases[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	known := make(map[string]bool, len(caseOrder))
	for _, c := range caseOrder {
		known[c] = true
		if _, ok := m[c]; ok {
			out = append(out, c)
		}
	}
	var rest []string
	for c := range m {
		if !known[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
