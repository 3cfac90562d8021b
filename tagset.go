package isv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// AuxParent is the parent value of the group-defining grammemes.
const AuxParent = "aux"

// Grammeme is one row of the grammeme mapping file.
type Grammeme struct {
	// Name is the source-vocabulary tag, unique within a TagSet.
	Name string
	// Parent is the group the tag belongs to, AuxParent for group tags.
	Parent string
	// Alias is the OpenCorpora tag; it defaults to Name.
	Alias string
	// LemmaForm lists the tags a form needs to be treated as the lemma form.
	LemmaForm []string
	// DivideBy lists the tags a paradigm may be split by.
	DivideBy []string
	// Description is free text.
	Description string
}

// TagSet is the grammeme taxonomy. It is immutable once loaded.
type TagSet struct {
	full   map[string]*Grammeme
	order  []string
	groups []string
	// members maps group → member tag names in file order.
	members map[string][]string
}

// LoadTagSet reads a semicolon-delimited grammeme mapping file.
func LoadTagSet(path string) (*TagSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grammeme mapping: %w", err)
	}
	defer f.Close()

	ts, err := ReadTagSet(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ts, nil
}

// column names of the mapping file header.
const (
	colName        = "name"
	colParent      = "parent"
	colAlias       = "opencorpora tags"
	colLemmaForm   = "lemma form"
	colDivideBy    = "divide by"
	colDescription = "description"
)

// ReadTagSet parses a mapping table from r. The first row is the header; the
// columns are located by name.
func ReadTagSet(r io.Reader) (*TagSet, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty grammeme mapping")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{colName, colParent} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("grammeme mapping has no %q column", required)
		}
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	ts := &TagSet{
		full:    make(map[string]*Grammeme),
		members: make(map[string][]string),
	}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		g := &Grammeme{
			Name:        field(rec, colName),
			Parent:      field(rec, colParent),
			Alias:       field(rec, colAlias),
			LemmaForm:   splitList(field(rec, colLemmaForm)),
			DivideBy:    splitList(field(rec, colDivideBy)),
			Description: field(rec, colDescription),
		}
		if g.Name == "" {
			continue
		}
		if g.Alias == "" {
			g.Alias = g.Name
		}
		ts.add(g)
	}
	return ts, nil
}

func (ts *TagSet) add(g *Grammeme) {
	if _, dup := ts.full[g.Name]; !dup {
		ts.order = append(ts.order, g.Name)
	}
	ts.full[g.Name] = g

	if _, seen := ts.members[g.Parent]; !seen {
		ts.groups = append(ts.groups, g.Parent)
	}
	ts.members[g.Parent] = append(ts.members[g.Parent], g.Name)
}

// Orphans returns the non-aux grammemes whose parent is not itself a
// grammeme of the set.
func (ts *TagSet) Orphans() []string {
	var out []string
	for _, name := range ts.order {
		p := ts.full[name].Parent
		if p == AuxParent {
			continue
		}
		if _, ok := ts.full[p]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// splitList splits a comma list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Grammemes returns every grammeme in file order.
func (ts *TagSet) Grammemes() []*Grammeme {
	out := make([]*Grammeme, 0, len(ts.order))
	for _, name := range ts.order {
		out = append(out, ts.full[name])
	}
	return out
}

// Grammeme looks a tag up by name.
func (ts *TagSet) Grammeme(name string) (*Grammeme, bool) {
	g, ok := ts.full[name]
	return g, ok
}

// Groups returns the parent values in first-seen order.
func (ts *TagSet) Groups() []string {
	return append([]string(nil), ts.groups...)
}

// Members returns the tags whose parent is group.
func (ts *TagSet) Members(group string) []string {
	return append([]string(nil), ts.members[group]...)
}

// Names returns all tags that are not group definitions.
func (ts *TagSet) Names() []string {
	var out []string
	for _, name := range ts.order {
		if ts.full[name].Parent != AuxParent {
			out = append(out, name)
		}
	}
	return out
}

// Alias maps a tag to its OpenCorpora name. Unknown tags map to themselves.
func (ts *TagSet) Alias(name string) string {
	if g, ok := ts.full[name]; ok {
		return g.Alias
	}
	return name
}

// SortKey returns the position of the tag's group. Unknown tags get
// len(Groups()), which sorts them after every known one.
func (ts *TagSet) SortKey(name string) int {
	g, ok := ts.full[name]
	if !ok {
		return len(ts.groups)
	}
	for i, group := range ts.groups {
		if group == g.Parent {
			return i
		}
	}
	return len(ts.groups)
}

// SortTags orders tags by group position, then by name.
func (ts *TagSet) SortTags(tags Tags) []string {
	out := tags.Sorted()
	sort.SliceStable(out, func(i, j int) bool {
		return ts.SortKey(out[i]) < ts.SortKey(out[j])
	})
	return out
}
