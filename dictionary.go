// Package isv converts the Interslavic source dictionary into an
// OpenCorpora-style morphological dictionary: every inflected form of every
// headword, tagged with a normalised grammeme vocabulary.
package isv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// MergePolicy decides what happens when two lemmas share a signature.
type MergePolicy int

const (
	// MergeOverwrite keeps the later lemma and drops the earlier one with
	// all its forms. The earlier lemma's export position is kept.
	MergeOverwrite MergePolicy = iota
	// MergeUnion adds the forms of the later lemma to the earlier one.
	MergeUnion
)

func (m MergePolicy) String() string {
	switch m {
	case MergeOverwrite:
		return "overwrite"
	case MergeUnion:
		return "union"
	default:
		return fmt.Sprintf("MergePolicy(%d)", int(m))
	}
}

// ParseMergePolicy accepts "overwrite" (or "") and "union".
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overwrite":
		return MergeOverwrite, nil
	case "union":
		return MergeUnion, nil
	default:
		return 0, fmt.Errorf("unknown merge policy %q", s)
	}
}

// Options configures a Dictionary. The zero value is usable.
type Options struct {
	// Logger receives diagnostics; nil means slog.Default().
	Logger *slog.Logger
	// Observer, if set, is told about every homograph collision.
	Observer DoubleformObserver
	Merge    MergePolicy
	// Version and Revision go to the export root; they default to "0.2"
	// and "1".
	Version  string
	Revision string
}

// Dictionary holds every lemma built from the source, keyed by lemma
// signature.
type Dictionary struct {
	lemmas map[string]*Lemma
	// order keeps signatures in first-insertion order.
	order []string

	log      *slog.Logger
	observer DoubleformObserver
	merge    MergePolicy
	version  string
	revision string

	stats Stats
}

// New creates an empty Dictionary.
func New(opts Options) *Dictionary {
	d := &Dictionary{
		lemmas:   make(map[string]*Lemma),
		log:      opts.Logger,
		merge:    opts.Merge,
		version:  opts.Version,
		revision: opts.Revision,
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	if d.version == "" {
		d.version = "0.2"
	}
	if d.revision == "" {
		d.revision = "1"
	}
	obs := observers{&d.stats, DoubleformFunc(d.logDoubleform)}
	if opts.Observer != nil {
		obs = append(obs, opts.Observer)
	}
	d.observer = obs
	return d
}

// Load reads the source dictionary at path (optionally .gz or .bz2).
func Load(path string, opts Options) (*Dictionary, error) {
	rc, err := OpenSource(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	d := New(opts)
	if err := d.Read(rc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read consumes a whole source dictionary. Any error is fatal: the
// dictionary must not be exported afterwards.
func (d *Dictionary) Read(r io.Reader) error {
	for rec, err := range Records(r) {
		if err != nil {
			return err
		}
		if err := d.AddRecord(rec); err != nil {
			return fmt.Errorf("line %d: %w", rec.Line, err)
		}
	}
	d.log.Info("source read",
		slog.Int("records", d.stats.Records),
		slog.Int("lemmas", len(d.lemmas)),
		slog.Int("doubleforms", d.stats.Doubleforms))
	return nil
}

// AddRecord builds the lemma of one source record and merges it in.
func (d *Dictionary) AddRecord(rec Record) error {
	d.stats.observeRecord(rec)
	if rec.IsMultiword() {
		d.log.Debug("multi-word headword",
			slog.String("headword", rec.Headword),
			slog.String("pos", rec.FormattedPOS))
	}

	tags := rec.Tags()
	pos := InferPOS(tags)
	lemma := NewLemma(rec.Headword, tags)

	numbers := make(Tags)
	for inf, err := range Expand(Entry{Headword: rec.Headword, Table: rec.Table, Tags: tags}) {
		if err != nil {
			return err
		}
		if err := d.addVariants(lemma, inf); err != nil {
			return err
		}
		if pos == POSNoun || pos == POSNumeral {
			for _, n := range nounColumns {
				if inf.Tags.Has(n) {
					numbers[n] = struct{}{}
				}
			}
		}
	}

	if len(numbers) == 1 {
		if numbers.Has("singular") {
			lemma.LemmaForm().addMarkers("Sgtm")
		} else {
			lemma.LemmaForm().addMarkers("Pltm")
		}
	}
	d.AddLemma(lemma)
	return nil
}

// maxVariants is the number of slash-separated spellings a cell may hold.
const maxVariants = 2

// addVariants splits "a/b" cells; the second spelling is an alternate form.
func (d *Dictionary) addVariants(lemma *Lemma, inf Inflection) error {
	variants := strings.Split(inf.Surface, "/")
	if len(variants) > maxVariants {
		return &StructuralError{
			Headword: lemma.Headword,
			Section:  "alternates",
			Detail:   fmt.Sprintf("%q splits into %d variants, at most %d expected", inf.Surface, len(variants), maxVariants),
		}
	}
	for i, v := range variants {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		tags := inf.Tags
		if i > 0 {
			tags = tags.With("alt-form")
		}
		lemma.AddForm(NewWordForm(v, tags, false), d.observer)
	}
	return nil
}

// AddLemma stores l under its signature, resolving a clash with the merge
// policy.
func (d *Dictionary) AddLemma(l *Lemma) {
	if l == nil {
		return
	}
	sig := l.Signature()
	prev, ok := d.lemmas[sig]
	if !ok {
		d.lemmas[sig] = l
		d.order = append(d.order, sig)
		return
	}
	switch d.merge {
	case MergeUnion:
		prev.merge(l, d.observer)
		d.stats.Merged++
		d.log.Debug("lemma merged", slog.String("signature", sig))
	default:
		d.lemmas[sig] = l
		d.stats.Overwritten++
		d.log.Debug("lemma overwritten",
			slog.String("signature", sig),
			slog.Int("dropped_forms", prev.Len()))
	}
}

// Lemma returns the lemma stored under signature.
func (d *Dictionary) Lemma(signature string) (*Lemma, bool) {
	l, ok := d.lemmas[signature]
	return l, ok
}

// Lemmas returns the lemmas in export order.
func (d *Dictionary) Lemmas() []*Lemma {
	out := make([]*Lemma, 0, len(d.order))
	for _, sig := range d.order {
		out = append(out, d.lemmas[sig])
	}
	return out
}

// Len is the number of distinct lemma signatures.
func (d *Dictionary) Len() int {
	return len(d.lemmas)
}

// Stats returns the diagnostics collected so far.
func (d *Dictionary) Stats() Stats {
	s := d.stats
	s.Lemmas = len(d.lemmas)
	s.Forms, s.Skipped = 0, 0
	for _, l := range d.lemmas {
		s.Forms += l.Len()
		if len(l.common) == 0 {
			s.Skipped++
		}
	}
	return s
}

func (d *Dictionary) logDoubleform(l *Lemma, sig string, forms []*WordForm) {
	if !d.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	surfaces := make([]string, len(forms))
	for i, f := range forms {
		surfaces[i] = f.Surface
	}
	d.log.Debug("forms with same tagset",
		slog.String("lemma", l.Headword),
		slog.String("tags", sig),
		slog.String("forms", strings.Join(surfaces, ", ")))
}

// observers fans a notification out in order.
type observers []DoubleformObserver

func (o observers) Doubleform(l *Lemma, sig string, forms []*WordForm) {
	for _, obs := range o {
		obs.Doubleform(l, sig, forms)
	}
}
