package isv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	d := readDictionary(t, quietOptions(),
		sourceLine(1, "dom", "m.", `{"nom": ["dom", "domy"], "gen": ["doma", "domov"]}`),
		sourceLine(2, "hm", "", `""`),
		sourceLine(3, "dobry", "adj.", adjectiveTableJSON),
	)
	return NewIndex(d, testTagSet(t))
}

func TestAnalyze(t *testing.T) {
	x := testIndex(t)

	got := x.Analyze("domy")
	require.Len(t, got, 1)
	assert.Equal(t, "дом", got[0].Lemma)
	assert.Equal(t, "dom", got[0].Headword)
	assert.Equal(t, POSNoun, got[0].POS)
	assert.Equal(t, []string{"masc", "plur", "nomn"}, got[0].Tags)

	assert.Equal(t, got, x.Analyze("Domy"))
	assert.Equal(t, got, x.Analyze("ДОМЫ"))
	assert.Empty(t, x.Analyze("zzz"))
	assert.Empty(t, x.Analyze("hm"), "lemmas without tags are not indexed")
}

func TestAnalyzeHomonymousForms(t *testing.T) {
	x := testIndex(t)

	// the lemma form and the nominative singular
	assert.Len(t, x.Analyze("dom"), 2)

	// one reading per distinct tag set, animacy included
	readings := x.Analyze("dobrogo")
	assert.NotEmpty(t, readings)
	for _, an := range readings {
		assert.Equal(t, "добры", an.Lemma)
	}
}

func TestAnalyzeText(t *testing.T) {
	x := testIndex(t)

	got := x.AnalyzeText("Dom, domy! 42 zzz")
	require.Len(t, got, 3)
	assert.Equal(t, "Dom", got[0].Token)
	assert.Len(t, got[0].Analyses, 2)
	assert.Equal(t, "domy", got[1].Token)
	assert.Len(t, got[1].Analyses, 1)
	assert.Equal(t, "zzz", got[2].Token)
	assert.Empty(t, got[2].Analyses)
}

func TestParadigm(t *testing.T) {
	x := testIndex(t)

	nodes := x.Paradigm("Dom")
	require.Len(t, nodes, 1)
	assert.Equal(t, 1, nodes[0].ID)
	assert.Equal(t, "дом", nodes[0].Lemma.Text)
	assert.Len(t, nodes[0].Forms, 5)

	nodes = x.Paradigm("dobry")
	require.Len(t, nodes, 1)
	assert.Equal(t, 3, nodes[0].ID)

	assert.Empty(t, x.Paradigm("hm"))
	assert.Empty(t, x.Paradigm("nič"))
}

func TestIndexSizeAndGrammemes(t *testing.T) {
	x := testIndex(t)
	assert.Greater(t, x.Size(), 4)
	assert.Len(t, x.Grammemes(), 14)
}
