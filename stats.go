package isv

import "strings"

// Stats collects diagnostics of a conversion. It has no influence on the
// output.
type Stats struct {
	Records int `json:"records"`
	Lemmas  int `json:"lemmas"`
	Forms   int `json:"forms"`
	// Doubleforms counts extra surfaces stored under an existing signature.
	Doubleforms int `json:"doubleforms"`
	// Reflexive counts two-word "X sę" headwords.
	Reflexive int `json:"reflexive"`
	// Multiword counts other multi-word headwords with a table.
	Multiword int `json:"multiword"`
	// MultiwordNonVerb counts the multi-word headwords not described as verbs.
	MultiwordNonVerb int `json:"multiword_non_verb"`
	// Overwritten counts lemmas replaced by a later one with the same signature.
	Overwritten int `json:"overwritten"`
	// Merged counts lemmas folded into an earlier one with the same signature.
	Merged int `json:"merged"`
	// Skipped counts lemmas the export leaves out for lack of common tags.
	Skipped int `json:"skipped"`
}

// Doubleform counts a collision; Stats is itself an observer.
func (s *Stats) Doubleform(*Lemma, string, []*WordForm) {
	s.Doubleforms++
}

// observeRecord updates the multi-word counters for rec.
func (s *Stats) observeRecord(rec Record) {
	s.Records++
	if !rec.IsMultiword() {
		return
	}
	if rec.IsReflexive() {
		s.Reflexive++
		return
	}
	s.Multiword++
	if !strings.Contains(rec.FormattedPOS, "verb") {
		s.MultiwordNonVerb++
	}
}
