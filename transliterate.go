package isv

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// keepCaronReplacer folds the letters whose diacritic marks a separate phoneme
// onto plain Cyrillic (or Latin j) letters before decomposition, so that the
// mark survives the later stripping of combining characters.
var keepCaronReplacer = strings.NewReplacer(
	"ž", "ж",
	"č", "ч",
	"š", "ш",
	"ě", "є",
	"й", "j",
	"ć", "ч",
	"ż", "ж",
	"ę", "е",
	"ų", "у",
	"œ", "о",
)

// digraphReplacer expands letters of neighbouring alphabets into the clusters
// the target orthography spells them with.
var digraphReplacer = strings.NewReplacer(
	"đ", "dž",
	// Serbian and Macedonian
	"љ", "ль",
	"њ", "нь",
	// Russian
	"я", "йа",
	"ю", "йу",
)

// latinToCyrillic is the one-to-one alphabet mapping. Both j readings map to
// the soft sign, which jeReplacer turns into ј afterwards.
var latinToCyrillic = map[rune]rune{
	'a': 'а', 'b': 'б', 'c': 'ц', 'č': 'ч', 'd': 'д', 'e': 'е', 'ě': 'є',
	'f': 'ф', 'g': 'г', 'h': 'х', 'i': 'и', 'j': 'ь', 'k': 'к', 'l': 'л',
	'm': 'м', 'n': 'н', 'o': 'о', 'p': 'п', 'r': 'р', 's': 'с', 'š': 'ш',
	't': 'т', 'u': 'у', 'v': 'в', 'y': 'ы', 'z': 'з', 'ž': 'ж',
}

var jeReplacer = strings.NewReplacer(
	"й", "ј",
	"ь", "ј",
)

// asciiWhitespace is the only whitespace kept by the letter filter.
const asciiWhitespace = " \t\n\r\v\f"

// Transliterate converts a Latin-script (or mixed-script) surface form into
// the Cyrillic orthography used by the exported dictionary. It lowercases,
// removes every diacritic except those with phonemic value, drops
// non-letters and trims surrounding whitespace. Applying it to its own output
// is a no-op.
func Transliterate(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "\n", " ")

	s = norm.NFKD.String(keepCaronReplacer.Replace(s))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || strings.ContainsRune(asciiWhitespace, r) {
			b.WriteRune(r)
		}
	}
	s = digraphReplacer.Replace(b.String())

	s = strings.Map(func(r rune) rune {
		if c, ok := latinToCyrillic[r]; ok {
			return c
		}
		return r
	}, s)

	return strings.TrimSpace(jeReplacer.Replace(s))
}
