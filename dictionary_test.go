package isv

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func readDictionary(t *testing.T, opts Options, lines ...string) *Dictionary {
	t.Helper()
	d := New(opts)
	require.NoError(t, d.Read(strings.NewReader(source(lines...))))
	return d
}

func surfaces(forms []*WordForm) []string {
	out := make([]string, len(forms))
	for i, f := range forms {
		out[i] = f.Surface
	}
	return out
}

func TestPluraleTantum(t *testing.T) {
	d := readDictionary(t, quietOptions(),
		sourceLine(1, "nožnice", "f.pl.", `{"nom": [null, "nožnice"], "gen": [null, "nožnic"]}`),
		sourceLine(2, "mlěko", "n.", `{"nom": ["mlěko", null], "gen": ["mlěka", null]}`),
		sourceLine(3, "dom", "m.", `{"nom": ["dom", "domy"]}`),
	)

	l, ok := d.Lemma("nožnice|f,pl")
	require.True(t, ok)
	assert.True(t, l.LemmaForm().Tags.Has("Pltm"))
	assert.False(t, l.LemmaForm().Tags.Has("Sgtm"))
	assert.Equal(t, "f,pl", l.LemmaForm().Signature(), "markers do not regroup the form")

	l, ok = d.Lemma("mlěko|n")
	require.True(t, ok)
	assert.True(t, l.LemmaForm().Tags.Has("Sgtm"))

	l, ok = d.Lemma("dom|m")
	require.True(t, ok)
	assert.False(t, l.LemmaForm().Tags.HasAny("Sgtm", "Pltm"))
}

func TestSlashVariants(t *testing.T) {
	d := readDictionary(t, quietOptions(),
		sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy/domi"]}`),
	)
	l, ok := d.Lemma("dom|m")
	require.True(t, ok)

	forms := l.FormsFor(NewTags("m", "nom", "plural").Signature())
	assert.Equal(t, []string{"domy"}, surfaces(forms))
	alt := l.FormsFor(NewTags("m", "nom", "plural", "alt-form").Signature())
	assert.Equal(t, []string{"domi"}, surfaces(alt))
}

func TestTooManySlashVariants(t *testing.T) {
	d := New(quietOptions())
	err := d.Read(strings.NewReader(source(
		sourceLine(1, "dom", "m.", `{"nom": ["dom", "a/b/c"]}`),
	)))
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.ErrorContains(t, err, "line 2")

	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "dom", se.Headword)
	assert.Equal(t, "alternates", se.Section)
}

func TestSlashHeadwordsWithoutTable(t *testing.T) {
	obs := &countingObserver{}
	opts := quietOptions()
	opts.Observer = obs
	d := readDictionary(t, opts,
		sourceLine(1, "aj/oj", "intj.", `"aj/oj"`),
		sourceLine(2, "a/b/c", "n.", `"indecl."`),
		sourceLine(3, "ono/to", "pron.", `{"nom": ["ono"]}`),
	)

	for _, sig := range []string{"aj/oj|intj", "a/b/c|n", "ono/to|pron"} {
		l, ok := d.Lemma(sig)
		require.True(t, ok, sig)
		assert.Equal(t, 1, l.Len(), sig)
		assert.True(t, l.LemmaForm().IsLemma, sig)
	}
	assert.Equal(t, 0, obs.calls)
	assert.Equal(t, 0, d.Stats().Doubleforms)
}

func TestMalformedLineAborts(t *testing.T) {
	d := New(quietOptions())
	err := d.Read(strings.NewReader(source(
		sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy"]}`),
		"not a record",
		sourceLine(3, "kot", "m.", `{"nom": ["kot", "koty"]}`),
	)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
	assert.True(t, IsFatal(err))
	assert.ErrorContains(t, err, "line 3")
}

func TestStructuralErrorAborts(t *testing.T) {
	d := New(quietOptions())
	err := d.Read(strings.NewReader(source(
		sourceLine(1, "dobry", "adj.", `{"singular": {"nom": ["dobry"]}}`),
	)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructural))
}

func TestNegatedVerbKeepsLemmaForm(t *testing.T) {
	d := readDictionary(t, quietOptions(),
		sourceLine(1, "ne dělati", "v.tr. ipf.", verbTableJSON),
	)
	l, ok := d.Lemma("ne dělati|ipf,tr,v")
	require.True(t, ok)
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "ne dělati", l.LemmaForm().Surface)
}

func TestMergePolicies(t *testing.T) {
	first := sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy"]}`)
	other := sourceLine(2, "kot", "m.", `{"nom": ["kot", "koty"]}`)
	second := sourceLine(3, "dom", "m.", `{"nom": ["dom", "domi"]}`)
	plural := NewTags("m", "nom", "plural").Signature()

	t.Run("overwrite", func(t *testing.T) {
		d := readDictionary(t, quietOptions(), first, other, second)

		assert.Equal(t, 2, d.Len())
		l, ok := d.Lemma("dom|m")
		require.True(t, ok)
		assert.Equal(t, []string{"domi"}, surfaces(l.FormsFor(plural)))

		lemmas := d.Lemmas()
		require.Len(t, lemmas, 2)
		assert.Equal(t, "dom", lemmas[0].Headword, "overwritten lemma keeps its position")
		assert.Equal(t, "kot", lemmas[1].Headword)

		st := d.Stats()
		assert.Equal(t, 1, st.Overwritten)
		assert.Equal(t, 0, st.Merged)
		assert.Equal(t, 0, st.Doubleforms)
	})

	t.Run("union", func(t *testing.T) {
		obs := &countingObserver{}
		opts := quietOptions()
		opts.Merge = MergeUnion
		opts.Observer = obs
		d := readDictionary(t, opts, first, other, second)

		l, ok := d.Lemma("dom|m")
		require.True(t, ok)
		assert.Equal(t, []string{"domy", "domi"}, surfaces(l.FormsFor(plural)))
		assert.Equal(t, 4, l.Len())

		st := d.Stats()
		assert.Equal(t, 0, st.Overwritten)
		assert.Equal(t, 1, st.Merged)
		assert.Equal(t, 1, st.Doubleforms)
		assert.Equal(t, 1, obs.calls)
	})
}

func TestParseMergePolicy(t *testing.T) {
	for in, want := range map[string]MergePolicy{"": MergeOverwrite, "overwrite": MergeOverwrite, " Union ": MergeUnion} {
		got, err := ParseMergePolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMergePolicy("append")
	assert.Error(t, err)
	assert.Equal(t, "union", MergeUnion.String())
}

func TestStats(t *testing.T) {
	d := readDictionary(t, quietOptions(),
		sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy"]}`),
		sourceLine(2, "dobry den", "phrase", `{"nom": ["dobry den"]}`),
		sourceLine(3, "ne dělati", "v.tr. ipf.", verbTableJSON),
	)
	st := d.Stats()
	assert.Equal(t, 3, st.Records)
	assert.Equal(t, 3, st.Lemmas)
	assert.Equal(t, 3+1+1, st.Forms)
	assert.Equal(t, 2, st.Multiword)
	assert.Equal(t, 2, st.MultiwordNonVerb)
}

func TestObserveRecord(t *testing.T) {
	var s Stats
	table := []byte(`{}`)
	s.observeRecord(Record{Headword: "smějati sę", Table: table})
	s.observeRecord(Record{Headword: "dobry den", Table: table, FormattedPOS: "phrase"})
	s.observeRecord(Record{Headword: "iti dalje", Table: table, FormattedPOS: "verb phrase"})
	s.observeRecord(Record{Headword: "a, b", Table: table})
	s.observeRecord(Record{Headword: "iz vne", Table: []byte(`"prep."`)})

	assert.Equal(t, 5, s.Records)
	assert.Equal(t, 1, s.Reflexive)
	assert.Equal(t, 2, s.Multiword)
	assert.Equal(t, 1, s.MultiwordNonVerb)
}

type exportedDictionary struct {
	XMLName   xml.Name       `xml:"dictionary"`
	Version   string         `xml:"version,attr"`
	Revision  string         `xml:"revision,attr"`
	Grammemes []GrammemeNode `xml:"grammemes>grammeme"`
	Lemmata   []LemmaNode    `xml:"lemmata>lemma"`
}

func TestExport(t *testing.T) {
	ts := testTagSet(t)
	opts := quietOptions()
	opts.Version = "0.3"
	opts.Revision = "7"
	d := readDictionary(t, opts,
		sourceLine(1, "Dom", "m.", `{"nom": ["dom", "domy"]}`),
		sourceLine(2, "hm", "", `""`),
		sourceLine(3, "dobry", "adj.", adjectiveTableJSON),
	)

	var buf bytes.Buffer
	require.NoError(t, d.Export(&buf, ts))
	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))

	var got exportedDictionary
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "0.3", got.Version)
	assert.Equal(t, "7", got.Revision)

	require.Len(t, got.Grammemes, len(ts.Grammemes()))
	assert.Equal(t, "POST", got.Grammemes[0].Name)
	assert.Empty(t, got.Grammemes[0].Parent)
	assert.Equal(t, "ADJF", got.Grammemes[4].Name)
	assert.Equal(t, "adj", got.Grammemes[4].Alias)
	assert.Equal(t, "POST", got.Grammemes[4].Parent)

	require.Len(t, got.Lemmata, 2)
	dom := got.Lemmata[0]
	assert.Equal(t, 1, dom.ID)
	assert.Equal(t, 1, dom.Rev)
	assert.Equal(t, "дом", dom.Lemma.Text)
	assert.Equal(t, []TagNode{{V: "masc"}}, dom.Lemma.Tags)
	require.Len(t, dom.Forms, 3)
	assert.Equal(t, "дом", dom.Forms[0].Text)
	assert.Equal(t, "домы", dom.Forms[2].Text)
	assert.Equal(t, []TagNode{{V: "plur"}, {V: "nomn"}}, dom.Forms[2].Tags)

	assert.Equal(t, 3, got.Lemmata[1].ID, "the skipped lemma keeps its id")
	assert.Equal(t, "добры", got.Lemmata[1].Lemma.Text)
	assert.Equal(t, 1, d.Stats().Skipped)

	buf.Reset()
	require.NoError(t, d.Export(&buf, ts))
	assert.Equal(t, 1, d.Stats().Skipped, "exporting again does not recount")
}

func TestExportFile(t *testing.T) {
	ts := testTagSet(t)
	d := readDictionary(t, quietOptions(), sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy"]}`))

	path := t.TempDir() + "/dict.xml"
	require.NoError(t, d.ExportFile(path, ts))

	err := d.ExportFile(t.TempDir()+"/missing/dict.xml", ts)
	assert.Error(t, err)
}
