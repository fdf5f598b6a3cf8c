package xmp

import "iter"

// Structure is a mapping from property names to values that keeps keys in
// insertion order. Keys are used verbatim as element names, so they must be
// XML names, optionally prefixed (e.g. "dc:title").
//
// A nil *Structure behaves as an empty one for reading.
type Structure struct {
	keys   []string
	values map[string]Value
}

// NewStructure returns an empty Structure.
func NewStructure() *Structure {
	return &Structure{values: make(map[string]Value)}
}

// Set stores v, converted with Of, under key. Setting an existing key
// replaces its value and keeps its position. Returns s for chaining.
func (s *Structure) Set(key string, v any) *Structure {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = Of(v)
	return s
}

// Get returns the value stored under key.
func (s *Structure) Get(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key, reporting whether it was present.
func (s *Structure) Delete(key string) bool {
	if s == nil {
		return false
	}
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of keys, Null values included.
func (s *Structure) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *Structure) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// All iterates over entries in insertion order.
func (s *Structure) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if s == nil {
			return
		}
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}
