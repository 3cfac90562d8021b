package isv

import (
	"encoding/json"
	"iter"
	"strings"
)

// adjectiveTable is the shape of an adjective inflection table. Older
// entries use casesSingular/casesPlural instead of singular/plural.
type adjectiveTable struct {
	Singular      map[string][]string `json:"singular"`
	Plural        map[string][]string `json:"plural"`
	CasesSingular map[string][]string `json:"casesSingular"`
	CasesPlural   map[string][]string `json:"casesPlural"`
	Comparison    *struct {
		Positive    []string `json:"positive"`
		Comparative []string `json:"comparative"`
	} `json:"comparison"`
}

var animacies = []string{"anim", "inan"}

// animate picks the i-th reading of a masculine "animate/inanimate" cell.
// A cell without a slash serves both readings.
func animate(cell string, i int) string {
	parts := strings.Split(cell, "/")
	if i < len(parts) {
		return parts[i]
	}
	return parts[0]
}

// adjectiveCell is one (surface, gender) slot of a table row.
type adjectiveCell struct {
	surface string
	gender  string
}

// adjectiveRow spreads a row of a case over the three genders for one
// animacy reading. Nominative and accusative rows are [masc, neut, femn] in
// the singular and [masc, neut+femn] in the plural; the masculine cell may
// hold an animate/inanimate pair. Other rows are [masc+neut, femn] in the
// singular and a single cell in the plural.
func adjectiveRow(cas, number string, row []string, anim int) ([]adjectiveCell, error) {
	need := 1
	switch {
	case (cas == "nom" || cas == "acc") && number == "sing":
		need = 3
	case cas == "nom" || cas == "acc" || number == "sing":
		need = 2
	}
	if len(row) < need {
		return nil, structural("adjective", "%s %s row has %d cells, want %d", cas, number, len(row), need)
	}

	switch {
	case cas == "nom" && number == "sing":
		return []adjectiveCell{{row[0], "masc"}, {row[1], "neut"}, {row[2], "femn"}}, nil
	case cas == "acc" && number == "sing":
		return []adjectiveCell{{animate(row[0], anim), "masc"}, {row[1], "neut"}, {row[2], "femn"}}, nil
	case cas == "nom" || cas == "acc":
		return []adjectiveCell{{animate(row[0], anim), "masc"}, {row[1], "neut"}, {row[1], "femn"}}, nil
	case number == "sing":
		return []adjectiveCell{{row[0], "masc"}, {row[0], "neut"}, {row[1], "femn"}}, nil
	default:
		return []adjectiveCell{{row[0], "masc"}, {row[0], "neut"}, {row[0], "femn"}}, nil
	}
}

// adjectiveForms yields every case × number × gender × animacy form, then the
// positive and comparative degrees as adjective and as adverb.
func adjectiveForms(e Entry) iter.Seq2[Inflection, error] {
	return func(yield func(Inflection, error) bool) {
		var t adjectiveTable
		if err := json.Unmarshal(e.Table, &t); err != nil {
			yield(Inflection{}, structural("adjective", "decode table: %v", err))
			return
		}
		if t.CasesSingular != nil {
			t.Singular, t.Plural = t.CasesSingular, t.CasesPlural
		}

		numbers := []struct {
			tag  string
			rows map[string][]string
		}{
			{"sing", t.Singular},
			{"plur", t.Plural},
		}
		for _, num := range numbers {
			for _, cas := range orderedCases(num.rows) {
				for i, anim := range animacies {
					cells, err := adjectiveRow(cas, num.tag, num.rows[cas], i)
					if err != nil {
						yield(Inflection{}, err)
						return
					}
					for _, c := range cells {
						tags := e.Tags.With(cas, num.tag, c.gender, anim)
						if !yield(Inflection{Surface: c.surface, Tags: tags}, nil) {
							return
						}
					}
				}
			}
		}

		cmp := t.Comparison
		if cmp == nil || len(cmp.Positive) < 2 || len(cmp.Comparative) < 2 {
			yield(Inflection{}, structural("comparison", "want positive and comparative pairs"))
			return
		}
		degrees := []Inflection{
			{cmp.Positive[0], e.Tags.With("positive")},
			{cmp.Comparative[0], e.Tags.With("comparative")},
			{cmp.Positive[1], e.Tags.With("adverb", "positive")},
			{cmp.Comparative[1], e.Tags.With("adverb", "comparative")},
		}
		for _, d := range degrees {
			if !yield(d, nil) {
				return
			}
		}
	}
}
