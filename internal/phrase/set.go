package phrase

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Set is the per-run collection of discovered phrases. Every key maps to its
// own text at discovery time; keys keep the order of their first insertion.
// A Set is owned by a single run and is not safe for concurrent use.
type Set struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{entries: orderedmap.New[string, string]()}
}

// Add records phrase as key and value. Adding an existing phrase is a no-op.
// It reports whether the phrase was new. Invalid UTF-8 is replaced with
// U+FFFD so the key matches what a JSON catalog stores.
func (s *Set) Add(phrase string) bool {
	phrase = normalize(phrase)
	if _, ok := s.entries.Get(phrase); ok {
		return false
	}
	s.entries.Set(phrase, phrase)
	return true
}

// Has reports whether phrase is already a key.
func (s *Set) Has(phrase string) bool {
	_, ok := s.entries.Get(normalize(phrase))
	return ok
}

// Get returns the value stored for key.
func (s *Set) Get(key string) (string, bool) {
	return s.entries.Get(normalize(key))
}

// Len returns the number of phrases.
func (s *Set) Len() int {
	return s.entries.Len()
}

// Keys returns the phrases in insertion order.
func (s *Set) Keys() []string {
	keys := make([]string, 0, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Map returns a copy of the phrases as a plain map.
func (s *Set) Map() map[string]string {
	m := make(map[string]string, s.entries.Len())
	for pair := s.entries.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

func normalize(phrase string) string {
	return strings.ToValidUTF8(phrase, "\uFFFD")
}
