package ds

import (
	"bytes"
	"encoding/json"
)

type (
	// LinkedHashMap is a map that remembers insertion order, both for key fetching and for JSON
	// serialization. Each key also remembers the position it was first inserted at.
	LinkedHashMap[K comparable, V any] struct {
		hashMap  map[K]linkedEntry[V]
		ordering []K
	}
	linkedEntry[V any] struct {
		index int
		value V
	}
)

func NewLinkedHashMap[K comparable, V any]() *LinkedHashMap[K, V] {
	return &LinkedHashMap[K, V]{
		hashMap:  map[K]linkedEntry[V]{},
		ordering: make([]K, 0),
	}
}

func (r *LinkedHashMap[K, V]) Len() int {
	return len(r.ordering)
}

func (r *LinkedHashMap[K, V]) Keys() []K {
	return ShallowCopy(r.ordering)
}

// Put inserts or replaces the value of key. A replaced key keeps its original position.
func (r *LinkedHashMap[K, V]) Put(key K, value V) {
	entry, existed := r.hashMap[key]
	if !existed {
		entry.index = len(r.ordering)
		r.ordering = append(r.ordering, key)
	}
	entry.value = value
	r.hashMap[key] = entry
}

func (r *LinkedHashMap[K, V]) Get(key K) (V, bool) {
	entry, ok := r.hashMap[key]
	return entry.value, ok
}

// Index returns the insertion position of key, or -1.
func (r *LinkedHashMap[K, V]) Index(key K) int {
	entry, ok := r.hashMap[key]
	if !ok {
		return -1
	}
	return entry.index
}

func (r *LinkedHashMap[K, V]) Has(key K) bool {
	_, ok := r.hashMap[key]
	return ok
}

func (r LinkedHashMap[K, V]) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0))

	buf.WriteRune('{')
	for i, key := range r.ordering {
		keyBs, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBs)

		buf.WriteRune(':')

		valueBs, err := json.Marshal(r.hashMap[key].value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBs)

		if i+1 < len(r.ordering) {
			buf.WriteRune(',')
		}
	}
	buf.WriteRune('}')

	return buf.Bytes(), nil
}
