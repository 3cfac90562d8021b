package isv

import "fmt"

// WordForm is a single inflected surface form with its tags.
type WordForm struct {
	// Surface is the form as spelled in the source.
	Surface string
	// Tags holds the grammemes of the form.
	Tags Tags
	// IsLemma marks the canonical form of its lemma.
	IsLemma bool
	// signature is fixed at construction; tags added later by
	// addMarkers do not move the form to another group.
	signature string
	pos       PartOfSpeech
}

// NewWordForm creates a form. tags is copied.
func NewWordForm(surface string, tags Tags, isLemma bool) *WordForm {
	t := tags.Clone()
	return &WordForm{
		Surface:   surface,
		Tags:      t,
		IsLemma:   isLemma,
		signature: t.Signature(),
		pos:       InferPOS(t),
	}
}

// Signature is the grouping key of the form inside its lemma.
func (f *WordForm) Signature() string {
	return f.signature
}

// POS is the part of speech inferred from the tags at construction.
func (f *WordForm) POS() PartOfSpeech {
	return f.pos
}

// addMarkers attaches derived tags such as Sgtm/Pltm after aggregation.
func (f *WordForm) addMarkers(names ...string) {
	for _, n := range names {
		f.Tags[n] = struct{}{}
	}
}

func (f *WordForm) String() string {
	return fmt.Sprintf("<%s: %s>", f.Surface, f.signature)
}
