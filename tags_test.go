package isv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTagPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"adj.", []string{"adj"}},
		{"m.", []string{"m"}},
		{"v.tr. ipf./pf.", []string{"ipf/pf", "tr", "v"}},
		{"f.pl.", []string{"f", "pl"}},
		{"", []string{}},
		{" . . ", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseTagPath(tt.in).Sorted(), "ParseTagPath(%q)", tt.in)
	}
}

func TestSignatureIgnoresInsertionOrder(t *testing.T) {
	a := NewTags("nom", "sing", "masc")
	b := NewTags("masc", "nom").With("sing")
	c := NewTags("sing").Union(NewTags("nom"), NewTags("masc", "nom"))

	assert.Equal(t, "masc,nom,sing", a.Signature())
	assert.Equal(t, a.Signature(), b.Signature())
	assert.Equal(t, a.Signature(), c.Signature())
}

func TestTagsSetOperations(t *testing.T) {
	a := NewTags("adj", "nom", "sing")
	b := NewTags("adj", "gen", "sing")

	assert.Equal(t, []string{"adj", "sing"}, a.Intersect(b).Sorted())
	assert.Equal(t, []string{"nom"}, a.Minus(b).Sorted())
	assert.Equal(t, []string{"adj", "gen", "nom", "sing"}, a.Union(b).Sorted())

	w := a.With("anim")
	assert.True(t, w.Has("anim"))
	assert.False(t, a.Has("anim"), "With must not modify the receiver")
}

func TestInferPOS(t *testing.T) {
	tests := []struct {
		tags []string
		want PartOfSpeech
	}{
		{[]string{"adj"}, POSAdjective},
		{[]string{"adj", "m"}, POSAdjective},
		{[]string{"m"}, POSNoun},
		{[]string{"m/f"}, POSNoun},
		{[]string{"f", "v"}, POSNoun},
		{[]string{"adv"}, POSAdverb},
		{[]string{"conj", "prep"}, POSConjunction},
		{[]string{"prep"}, POSPreposition},
		{[]string{"pron", "num"}, POSPronoun},
		{[]string{"num"}, POSNumeral},
		{[]string{"intj"}, POSInterjection},
		{[]string{"v", "tr", "ipf"}, POSVerb},
		{[]string{"particle"}, POSUnknown},
		{nil, POSUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferPOS(NewTags(tt.tags...)), "InferPOS(%v)", tt.tags)
	}
	assert.Equal(t, "unknown", POSUnknown.String())
	assert.Equal(t, "verb", POSVerb.String())
}
