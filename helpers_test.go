package isv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testMapping = `name;parent;opencorpora tags;lemma form;divide by;description
POST;aux;;;;part of speech
GNdr;aux;;;;gender
NMbr;aux;;;;number
CAse;aux;;;;case
adj;POST;ADJF;;;adjective
v;POST;VERB;;;verb
m;GNdr;masc;;;masculine
f;GNdr;femn;;;feminine
sing;NMbr;;nom, sing;sing, plur;singular
plur;NMbr;;;;plural
singular;NMbr;sing;;;singular (noun)
plural;NMbr;plur;;;plural (noun)
nom;CAse;nomn;;;nominative
acc;CAse;accs;;;accusative
`

func testTagSet(t *testing.T) *TagSet {
	t.Helper()
	ts, err := ReadTagSet(strings.NewReader(testMapping))
	require.NoError(t, err)
	return ts
}

// sourceLine renders one record of the source dictionary. The table is
// compacted onto the line.
func sourceLine(id int, headword, pos, table string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(table)); err == nil {
		table = buf.String()
	}
	return fmt.Sprintf(`[%d, %q, "", %q]`+"\t%s\t%s", id, headword, pos, table, pos)
}

// source joins a header and lines into a source file body.
func source(lines ...string) string {
	return "raw\tforms\tpos\n" + strings.Join(lines, "\n") + "\n"
}

func collect(seq iter.Seq2[Inflection, error]) ([]Inflection, error) {
	var out []Inflection
	for inf, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, inf)
	}
	return out, nil
}

// surfacesWith returns the surfaces whose tags include all of names.
func surfacesWith(infs []Inflection, names ...string) []string {
	var out []string
	for _, inf := range infs {
		ok := true
		for _, n := range names {
			if !inf.Tags.Has(n) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, inf.Surface)
		}
	}
	return out
}
