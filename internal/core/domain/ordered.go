package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedSet is a set that remembers insertion order.
// The zero value is not usable; create one with NewOrderedSet.
type OrderedSet[T comparable] struct {
	index map[T]int
	items []T
}

// NewOrderedSet creates a set holding items in first-seen order.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{index: make(map[T]int, len(items))}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = len(s.items)
	s.items = append(s.items, v)
	return true
}

// Has reports whether v is in the set.
func (s *OrderedSet[T]) Has(v T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Delete removes v, keeping the order of the remaining items.
func (s *OrderedSet[T]) Delete(v T) bool {
	i, ok := s.index[v]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, v)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j]] = j
	}
	return true
}

// Len returns the number of items.
func (s *OrderedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the items in insertion order.
func (s *OrderedSet[T]) Items() []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Clone returns an independent copy.
func (s *OrderedSet[T]) Clone() *OrderedSet[T] {
	if s == nil {
		return NewOrderedSet[T]()
	}
	return NewOrderedSet(s.items...)
}

// OrderedMap is a map that remembers key insertion order.
// Setting an existing key keeps its original position.
type OrderedMap[K comparable, V any] struct {
	keys   *OrderedSet[K]
	values map[K]V
}

// NewOrderedMap creates an empty ordered map.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   NewOrderedSet[K](),
		values: make(map[K]V),
	}
}

// Set stores v under k.
func (m *OrderedMap[K, V]) Set(k K, v V) {
	m.keys.Add(k)
	m.values[k] = v
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.values[k]
	return v, ok
}

// Delete removes k and reports whether it was present.
func (m *OrderedMap[K, V]) Delete(k K) bool {
	if !m.keys.Delete(k) {
		return false
	}
	delete(m.values, k)
	return true
}

// Len returns the number of keys.
func (m *OrderedMap[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.keys.Len()
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return m.keys.Items()
}

// Clone returns a copy with its own key order and value map.
// Values are copied shallowly.
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	if m == nil {
		return out
	}
	for _, k := range m.keys.items {
		out.Set(k, m.values[k])
	}
	return out
}

// MarshalJSON encodes the set as an array in insertion order.
func (s *OrderedSet[T]) MarshalJSON() ([]byte, error) {
	items := s.Items()
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}

// MarshalJSON encodes the map as an object whose keys keep insertion order.
// Keys are rendered with fmt's %v verb.
func (m *OrderedMap[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprint(k))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
