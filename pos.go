package isv

// PartOfSpeech represents the grammatical category of a lemma or form.
type PartOfSpeech rune

const (
	POSAdjective    PartOfSpeech = 'a'
	POSNoun         PartOfSpeech = 'n'
	POSAdverb       PartOfSpeech = 'd'
	POSConjunction  PartOfSpeech = 'c'
	POSPreposition  PartOfSpeech = 'r'
	POSPronoun      PartOfSpeech = 'p'
	POSNumeral      PartOfSpeech = 'm'
	POSInterjection PartOfSpeech = 'i'
	POSVerb         PartOfSpeech = 'v'
	POSUnknown      PartOfSpeech = '-'
)

// String returns the lowercase English name, "unknown" for POSUnknown.
func (p PartOfSpeech) String() string {
	switch p {
	case POSAdjective:
		return "adjective"
	case POSNoun:
		return "noun"
	case POSAdverb:
		return "adverb"
	case POSConjunction:
		return "conjunction"
	case POSPreposition:
		return "preposition"
	case POSPronoun:
		return "pronoun"
	case POSNumeral:
		return "numeral"
	case POSInterjection:
		return "interjection"
	case POSVerb:
		return "verb"
	default:
		return "unknown"
	}
}

// genderTags mark a noun entry in the source descriptors.
var genderTags = []string{"f", "n", "m", "m/f"}

// InferPOS classifies a tag set. The first matching rule wins: adjective,
// gendered noun, adverb, conjunction, preposition, pronoun, numeral,
// interjection, verb.
func InferPOS(t Tags) PartOfSpeech {
	switch {
	case t.Has("adj"):
		return POSAdjective
	case t.HasAny(genderTags...):
		return POSNoun
	case t.Has("adv"):
		return POSAdverb
	case t.Has("conj"):
		return POSConjunction
	case t.Has("prep"):
		return POSPreposition
	case t.Has("pron"):
		return POSPronoun
	case t.Has("num"):
		return POSNumeral
	case t.Has("intj"):
		return POSInterjection
	case t.Has("v"):
		return POSVerb
	default:
		return POSUnknown
	}
}
