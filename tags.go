package isv

import (
	"sort"
	"strings"
)

// Tags is a set of grammeme names.
type Tags map[string]struct{}

// NewTags builds a tag set from names. Surrounding whitespace is trimmed and
// empty names are ignored.
func NewTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			t[n] = struct{}{}
		}
	}
	return t
}

// ParseTagPath splits a formatted part-of-speech descriptor such as
// "v.tr. ipf./pf." into its tag set. "./" is folded to "/", spaces are removed
// and the remainder is split on dots.
func ParseTagPath(s string) Tags {
	s = strings.ReplaceAll(s, "./", "/")
	s = strings.ReplaceAll(s, " ", "")
	return NewTags(strings.Split(s, ".")...)
}

// Has reports whether name is in the set.
func (t Tags) Has(name string) bool {
	_, ok := t[name]
	return ok
}

// HasAny reports whether at least one of names is in the set.
func (t Tags) HasAny(names ...string) bool {
	for _, n := range names {
		if t.Has(n) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of t.
func (t Tags) Clone() Tags {
	c := make(Tags, len(t))
	for n := range t {
		c[n] = struct{}{}
	}
	return c
}

// Union returns a new set holding the names of t and of every other set.
func (t Tags) Union(others ...Tags) Tags {
	u := t.Clone()
	for _, o := range others {
		for n := range o {
			u[n] = struct{}{}
		}
	}
	return u
}

// With returns a new set holding t plus names.
func (t Tags) With(names ...string) Tags {
	return t.Union(NewTags(names...))
}

// Intersect returns the names present in both t and o.
func (t Tags) Intersect(o Tags) Tags {
	r := make(Tags)
	for n := range t {
		if o.Has(n) {
			r[n] = struct{}{}
		}
	}
	return r
}

// Minus returns the names of t absent from o.
func (t Tags) Minus(o Tags) Tags {
	r := make(Tags, len(t))
	for n := range t {
		if !o.Has(n) {
			r[n] = struct{}{}
		}
	}
	return r
}

// Sorted returns the names in lexical order.
func (t Tags) Sorted() []string {
	out := make([]string, 0, len(t))
	for n := range t {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Signature is the comma-joined sorted name list. Two sets have equal
// signatures exactly when they hold the same names.
func (t Tags) Signature() string {
	return strings.Join(t.Sorted(), ",")
}

func (t Tags) String() string {
	return "{" + t.Signature() + "}"
}
