// Package savestate decodes raw snapshot artifacts into a generic key-value
// tree. The aggregation engine only ever sees this tree; it never touches the
// serialized bytes.
package savestate

import (
	"encoding/json"
	"fmt"
)

type Tree map[string]any

func Decode(data []byte) (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode save state: %w", err)
	}
	return tree, nil
}

// Section returns a nested object as a Tree.
func (t Tree) Section(key string) (Tree, bool) {
	v, ok := t[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return Tree(m), true
}

func (t Tree) String(key string) (string, bool) {
	v, ok := t[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Int reads a numeric field. JSON numbers decode as float64, which is the
// only numeric representation accepted here.
func (t Tree) Int(key string) (int, bool) {
	v, ok := t[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}
