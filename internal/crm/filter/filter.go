// Package filter models nested query filters and flattens them into the
// bracketed parameter notation used by PHP-style CRM APIs, e.g.
// {address: {city: "Minsk"}} -> address[city]=Minsk and
// {phones: [{number: "123"}]} -> phones[][number]=123.
package filter

import "strconv"

// Param is a single flattened key/value pair. A flattened tree is an ordered
// slice of Params; ordering follows tree traversal order and is stable so that
// generated query strings are reproducible.
type Param struct {
	Key   string
	Value string
}

// Node is a value in a filter tree: a Scalar, a List, or a Map.
// The set of implementations is closed; callers build trees from these three.
// A nil Node means "not set" and produces no parameters.
type Node interface {
	flatten(prefix string, dst []Param) []Param
}

// Scalar is a leaf value, already rendered to its wire string.
type Scalar struct {
	value string
}

// String returns a scalar node holding v as-is.
func String(v string) Scalar { return Scalar{value: v} }

// Int returns a scalar node holding the decimal rendering of v.
func Int(v int) Scalar { return Scalar{value: strconv.Itoa(v)} }

// Float returns a scalar node holding the shortest exact rendering of v.
func Float(v float64) Scalar { return Scalar{value: strconv.FormatFloat(v, 'f', -1, 64)} }

// Bool returns a scalar node rendering as "true" or "false".
func Bool(v bool) Scalar { return Scalar{value: strconv.FormatBool(v)} }

func (s Scalar) flatten(prefix string, dst []Param) []Param {
	// A scalar needs a name; with no prefix there is nothing to emit.
	if prefix == "" {
		return dst
	}
	return append(dst, Param{Key: prefix, Value: s.value})
}

// List is an ordered sequence of nodes. Elements flatten under the parent key
// with empty brackets: the target providers associate repeated bracket-less
// entries positionally, so indices are never embedded.
type List []Node

func (l List) flatten(prefix string, dst []Param) []Param {
	for _, n := range l {
		if n == nil {
			continue
		}
		dst = n.flatten(prefix+"[]", dst)
	}
	return dst
}

// Map is a mapping from string keys to nodes that remembers insertion order.
// Keys flatten as successive bracket segments: prefix[key].
type Map struct {
	keys  []string
	items map[string]Node
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{items: make(map[string]Node)}
}

// Set adds or replaces the node for key. A key set twice keeps its original
// position. Setting a nil node records the key but emits nothing on flatten,
// so unset optional filters can be passed through unconditionally.
func (m *Map) Set(key string, n Node) *Map {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = n
	return m
}

// Len reports the number of keys in the map, including keys set to nil.
func (m *Map) Len() int { return len(m.keys) }

func (m *Map) flatten(prefix string, dst []Param) []Param {
	for _, key := range m.keys {
		n := m.items[key]
		if n == nil {
			continue
		}
		childPrefix := key
		if prefix != "" {
			childPrefix = prefix + "[" + key + "]"
		}
		dst = n.flatten(childPrefix, dst)
	}
	return dst
}

// Flatten walks the tree depth-first and returns the ordered flattened
// parameters. The input tree is never mutated; flattening an equal tree twice
// yields an identical sequence. Nil nodes, nil-valued map entries, empty lists
// and empty maps all emit nothing: omission, not an empty string, represents
// "filter not set".
func Flatten(n Node, prefix string) []Param {
	if n == nil {
		return nil
	}
	return n.flatten(prefix, nil)
}
