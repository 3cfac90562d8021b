package isv

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// TagNode is a <g v="..."/> grammeme reference.
type TagNode struct {
	V string `xml:"v,attr" json:"v"`
}

// FormNode is an <l> headword or <f> form node.
type FormNode struct {
	Text string    `xml:"t,attr" json:"t"`
	Tags []TagNode `xml:"g" json:"tags"`
}

// LemmaNode is a <lemma> node.
type LemmaNode struct {
	XMLName xml.Name   `xml:"lemma" json:"-"`
	ID      int        `xml:"id,attr" json:"id"`
	Rev     int        `xml:"rev,attr" json:"rev"`
	Lemma   FormNode   `xml:"l" json:"lemma"`
	Forms   []FormNode `xml:"f" json:"forms"`
}

// GrammemeNode is a <grammeme> entry of the grammemes section. Name holds
// the OpenCorpora tag and Alias the source tag.
type GrammemeNode struct {
	XMLName     xml.Name `xml:"grammeme" json:"-"`
	Parent      string   `xml:"parent,attr,omitempty" json:"parent,omitempty"`
	Name        string   `xml:"name" json:"name"`
	Alias       string   `xml:"alias" json:"alias"`
	Description string   `xml:"description" json:"description"`
}

// tagNodes renders tags in TagSet order through the alias table.
func tagNodes(ts *TagSet, tags Tags) []TagNode {
	sorted := ts.SortTags(tags)
	out := make([]TagNode, len(sorted))
	for i, t := range sorted {
		out[i] = TagNode{V: ts.Alias(t)}
	}
	return out
}

// outputText is the exported spelling of a surface form.
func outputText(s string) string {
	return Transliterate(strings.ToLower(s))
}

// Node renders the lemma. It reports false when the lemma has no common
// tags, which the headword node cannot do without. Forms carry only the
// tags beyond the common ones; the canonical form comes first.
func (l *Lemma) Node(id int, ts *TagSet) (*LemmaNode, bool) {
	if len(l.common) == 0 {
		return nil, false
	}
	node := &LemmaNode{
		ID:  id,
		Rev: 1,
		Lemma: FormNode{
			Text: outputText(l.lemmaForm.Surface),
			Tags: tagNodes(ts, l.common),
		},
	}
	for _, f := range l.Forms() {
		fn := FormNode{
			Text: outputText(f.Surface),
			Tags: tagNodes(ts, f.Tags.Minus(l.common)),
		}
		if f.IsLemma {
			node.Forms = slices.Insert(node.Forms, 0, fn)
		} else {
			node.Forms = append(node.Forms, fn)
		}
	}
	return node, true
}

// GrammemeNodes describes the taxonomy, group tags without a parent.
func GrammemeNodes(ts *TagSet) []GrammemeNode {
	gs := ts.Grammemes()
	out := make([]GrammemeNode, 0, len(gs))
	for _, g := range gs {
		n := GrammemeNode{Name: g.Alias, Alias: g.Name, Description: g.Description}
		if g.Parent != AuxParent {
			n.Parent = g.Parent
		}
		out = append(out, n)
	}
	return out
}

// Export writes the dictionary as XML. Lemma ids are 1-based positions in
// export order; a lemma without common tags is left out, and its id with it.
func (d *Dictionary) Export(w io.Writer, ts *TagSet) error {
	bw := bufio.NewWriter(w)
	if _, err := io.WriteString(bw, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	enc := xml.NewEncoder(bw)

	root := xml.StartElement{
		Name: xml.Name{Local: "dictionary"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "version"}, Value: d.version},
			{Name: xml.Name{Local: "revision"}, Value: d.revision},
		},
	}
	grammemes := xml.StartElement{Name: xml.Name{Local: "grammemes"}}
	lemmata := xml.StartElement{Name: xml.Name{Local: "lemmata"}}

	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := enc.EncodeToken(grammemes); err != nil {
		return err
	}
	for _, g := range GrammemeNodes(ts) {
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("encode grammeme %s: %w", g.Alias, err)
		}
	}
	if err := enc.EncodeToken(grammemes.End()); err != nil {
		return err
	}

	if err := enc.EncodeToken(lemmata); err != nil {
		return err
	}
	exported, skipped := 0, 0
	for i, l := range d.Lemmas() {
		node, ok := l.Node(i+1, ts)
		if !ok {
			skipped++
			d.log.Debug("lemma has no tags at all", slog.String("lemma", l.String()))
			continue
		}
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode lemma %s: %w", l.Headword, err)
		}
		exported++
	}
	if err := enc.EncodeToken(lemmata.End()); err != nil {
		return err
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("flush xml: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	d.log.Info("dictionary exported",
		slog.Int("lemmas", exported),
		slog.Int("skipped", skipped),
		slog.String("revision", d.revision))
	return nil
}

// ExportFile writes the XML export to path.
func (d *Dictionary) ExportFile(path string, ts *TagSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := d.Export(f, ts); err != nil {
		f.Close()
		return fmt.Errorf("export %s: %w", path, err)
	}
	return f.Close()
}
