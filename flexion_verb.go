package isv

import (
	"encoding/json"
	"iter"
	"strings"
)

// verbTable is the shape of a verb inflection table. The future is built
// from the infinitive with an auxiliary and has no cells of its own.
type verbTable struct {
	Infinitive string   `json:"infinitive"`
	Present    []string `json:"present"`
	Imperfect  []string `json:"imperfect"`
	Perfect    []string `json:"perfect"`
	Imperative string   `json:"imperative"`
	Prap       string   `json:"prap"`
	Prpp       string   `json:"prpp"`
	Pfap       string   `json:"pfap"`
	Pfpp       string   `json:"pfpp"`
	Gerund     string   `json:"gerund"`
}

const (
	negation  = "ne"
	reflexive = " sę"
)

// verbClitics are the auxiliary tokens removed from perfect cells to get the
// bare l-participle.
var verbClitics = map[string]bool{"(je)": true, "sę": true, "(sųt)": true, "ne": true}

// lParticipleCells picks perfect[2:5] and perfect[7]: masculine, feminine
// and neuter singular, then plural.
var lParticipleCells = []struct {
	index int
	tags  Tags
}{
	{2, NewTags("m", "past", "sing")},
	{3, NewTags("f", "past", "sing")},
	{4, NewTags("n", "past", "sing")},
	{7, NewTags("past", "plur")},
}

var personTags = []Tags{
	NewTags("1per", "sing"),
	NewTags("2per", "sing"),
	NewTags("3per", "sing"),
	NewTags("1per", "plur"),
	NewTags("2per", "plur"),
	NewTags("3per", "plur"),
}

var imperativeTags = []Tags{
	NewTags("2per"),
	NewTags("1per", "plur"),
	NewTags("2per", "plur"),
}

var participleKinds = []struct {
	name string
	tags Tags
}{
	{"prap", NewTags("actv", "present")},
	{"prpp", NewTags("pssv", "present")},
	{"pfap", NewTags("actv", "past")},
	{"pfpp", NewTags("pssv", "past")},
}

var participleGenders = []string{"m", "f", "n"}

// maxParticipleTokens is two groups of masculine, feminine and neuter.
const maxParticipleTokens = 6

// stripClitics drops auxiliary tokens from a periphrastic cell.
func stripClitics(cell string) string {
	var kept []string
	for _, p := range strings.Split(cell, " ") {
		if !verbClitics[p] {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// participleForm is one decoded token of a participle cell.
type participleForm struct {
	surface string
	gender  string
	alt     bool
}

var participleCleaner = strings.NewReplacer(",", "", "(", "", ")", "")

// splitParticiple decodes a participle cell such as "dělajųći (-a, -e)".
// Tokens come in groups of masculine, feminine, neuter; a second group is
// an alternate form. A token starting with a hyphen is an ending: it replaces
// the last letter of the first token of its group.
func splitParticiple(section, cell string) ([]participleForm, error) {
	tokens := strings.Fields(participleCleaner.Replace(cell))
	if len(tokens) > maxParticipleTokens {
		return nil, structural(section, "%d participle tokens in %q, at most %d expected",
			len(tokens), cell, maxParticipleTokens)
	}
	out := make([]participleForm, 0, len(tokens))
	var base []rune
	for i, tok := range tokens {
		f := participleForm{gender: participleGenders[i%3], alt: i >= 3}
		switch {
		case i%3 == 0:
			base = []rune(tok)
			f.surface = tok
		case strings.HasPrefix(tok, "-") && len(base) > 0:
			f.surface = string(base[:len(base)-1]) + tok[1:]
		default:
			f.surface = tok
		}
		out = append(out, f)
	}
	return out, nil
}

// verbForms yields l-participles, present and imperfect persons,
// imperatives, the four participles, the infinitive and the gerund. Entries
// whose headword starts with the negation particle are not expanded, and a
// trailing reflexive particle is cut from every form.
func verbForms(e Entry) iter.Seq2[Inflection, error] {
	return func(yield func(Inflection, error) bool) {
		if strings.HasPrefix(e.Headword, negation+" ") {
			return
		}
		var t verbTable
		if err := json.Unmarshal(e.Table, &t); err != nil {
			yield(Inflection{}, structural("verb", "decode table: %v", err))
			return
		}
		emit := func(surface string, tags Tags) bool {
			return yield(Inflection{Surface: strings.TrimSuffix(surface, reflexive), Tags: tags}, nil)
		}

		last := lParticipleCells[len(lParticipleCells)-1].index
		if len(t.Perfect) <= last {
			yield(Inflection{}, structural("perfect", "%d cells, want at least %d", len(t.Perfect), last+1))
			return
		}
		for _, c := range lParticipleCells {
			if !emit(stripClitics(t.Perfect[c.index]), e.Tags.Union(c.tags)) {
				return
			}
		}

		tenses := []struct {
			name string
			row  []string
		}{
			{"present", t.Present},
			{"imperfect", t.Imperfect},
		}
		for _, tense := range tenses {
			for i, cell := range tense.row {
				if i >= len(personTags) {
					break
				}
				readings := strings.Split(cell, ",")
				for j, reading := range readings[:min(len(readings), 2)] {
					tags := e.Tags.Union(personTags[i]).With(tense.name)
					if j > 0 {
						tags = tags.With("alt-form")
					}
					if !emit(strings.TrimSpace(reading), tags) {
						return
					}
				}
			}
		}

		for i, cell := range strings.Split(t.Imperative, ",") {
			if i >= len(imperativeTags) {
				break
			}
			if !emit(strings.TrimSpace(cell), e.Tags.Union(imperativeTags[i]).With("impr")) {
				return
			}
		}

		cells := map[string]string{"prap": t.Prap, "prpp": t.Prpp, "pfap": t.Pfap, "pfpp": t.Pfpp}
		for _, kind := range participleKinds {
			forms, err := splitParticiple(kind.name, cells[kind.name])
			if err != nil {
				yield(Inflection{}, err)
				return
			}
			for _, f := range forms {
				tags := e.Tags.Union(kind.tags).With(f.gender)
				if f.alt {
					tags = tags.With("alt-form")
				}
				if !emit(f.surface, tags) {
					return
				}
			}
		}

		if !emit(t.Infinitive, e.Tags.With("INFN")) {
			return
		}
		emit(t.Gerund, e.Tags.With("NOUN", "V-be"))
	}
}
