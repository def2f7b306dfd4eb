package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// TagSet is a set of free-text labels such as interest categories or grade
// levels. Catalog rows store them comma-separated; they are split once at
// load time with ParseTagSet.
type TagSet map[string]struct{}

// NewTagSet builds a set from the given tags, dropping blanks.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// ParseTagSet splits a comma-separated list into a TagSet.
func ParseTagSet(csv string) TagSet {
	return NewTagSet(strings.Split(csv, ",")...)
}

// Has reports whether tag is in the set.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Intersects reports whether any of tags is in the set.
func (s TagSet) Intersects(tags []string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted tags with ", ".
func (s TagSet) String() string { return strings.Join(s.Sorted(), ", ") }

// MarshalJSON encodes the set as a sorted array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of tags.
func (s *TagSet) UnmarshalJSON(b []byte) error {
	var tags []string
	if err := json.Unmarshal(b, &tags); err != nil {
		return err
	}
	*s = NewTagSet(tags...)
	return nil
}
