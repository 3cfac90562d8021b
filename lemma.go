package isv

// DoubleformObserver is told when a lemma receives a second, differently
// spelled form for a tag signature it already holds. Observers must not
// rely on being called; aggregation works the same without one.
type DoubleformObserver interface {
	Doubleform(l *Lemma, signature string, forms []*WordForm)
}

// DoubleformFunc adapts a function to DoubleformObserver.
type DoubleformFunc func(l *Lemma, signature string, forms []*WordForm)

// Doubleform calls f.
func (f DoubleformFunc) Doubleform(l *Lemma, signature string, forms []*WordForm) {
	f(l, signature, forms)
}

// Lemma is a headword with every form decoded for it.
type Lemma struct {
	// Headword is the dictionary spelling of the entry.
	Headword string

	lemmaForm *WordForm
	pos       PartOfSpeech

	// common is the intersection of the tags of all added forms; nil until
	// the first form arrives.
	common Tags

	// forms maps tag signature → forms in insertion order. More than one
	// entry means homographs across spelling.
	forms map[string][]*WordForm
	// order keeps the signatures in first-seen order.
	order []string
}

// NewLemma creates a lemma whose canonical form is the headword itself
// tagged with tags.
func NewLemma(headword string, tags Tags) *Lemma {
	l := &Lemma{
		Headword: headword,
		forms:    make(map[string][]*WordForm),
	}
	l.lemmaForm = NewWordForm(headword, tags, true)
	l.pos = l.lemmaForm.POS()
	l.AddForm(l.lemmaForm, nil)
	return l
}

// AddForm merges f into the lemma and narrows the common tags. A form whose
// surface is already stored under the same signature is ignored. A new
// surface for an existing signature is kept next to the older ones and
// reported to obs, which may be nil. It reports whether f was stored.
func (l *Lemma) AddForm(f *WordForm, obs DoubleformObserver) bool {
	if l.common == nil {
		l.common = f.Tags.Clone()
	} else {
		l.common = l.common.Intersect(f.Tags)
	}

	sig := f.Signature()
	existing, ok := l.forms[sig]
	if !ok {
		l.forms[sig] = []*WordForm{f}
		l.order = append(l.order, sig)
		return true
	}
	for _, e := range existing {
		if e.Surface == f.Surface {
			return false
		}
	}
	l.forms[sig] = append(existing, f)
	if obs != nil {
		obs.Doubleform(l, sig, l.forms[sig])
	}
	return true
}

// LemmaForm returns the canonical form.
func (l *Lemma) LemmaForm() *WordForm {
	return l.lemmaForm
}

// POS is the part of speech of the canonical form.
func (l *Lemma) POS() PartOfSpeech {
	return l.pos
}

// CommonTags returns a copy of the tags shared by every form.
func (l *Lemma) CommonTags() Tags {
	return l.common.Clone()
}

// Signatures returns the tag signatures in first-seen order.
func (l *Lemma) Signatures() []string {
	return append([]string(nil), l.order...)
}

// FormsFor returns the forms stored under signature.
func (l *Lemma) FormsFor(signature string) []*WordForm {
	return append([]*WordForm(nil), l.forms[signature]...)
}

// Forms returns every stored form, grouped by signature in first-seen order.
func (l *Lemma) Forms() []*WordForm {
	var out []*WordForm
	for _, sig := range l.order {
		out = append(out, l.forms[sig]...)
	}
	return out
}

// Len is the number of stored forms.
func (l *Lemma) Len() int {
	n := 0
	for _, fs := range l.forms {
		n += len(fs)
	}
	return n
}

// Signature is the dictionary merge key: the headword and the sorted
// common tags.
func (l *Lemma) Signature() string {
	return l.Headword + "|" + l.common.Signature()
}

// merge adds the forms of other to l. Both lemmas share the headword, so
// the canonical form of other is dropped.
func (l *Lemma) merge(other *Lemma, obs DoubleformObserver) {
	for _, f := range other.Forms() {
		if f == other.lemmaForm {
			continue
		}
		l.AddForm(f, obs)
	}
}

func (l *Lemma) String() string {
	return l.lemmaForm.String()
}
