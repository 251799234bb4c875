package article

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

// Node is one value of an untyped page-state tree. Object keys keep their
// document order so that searches visit them the way the page declared them.
type Node struct {
	Kind   Kind
	Keys   []string
	Fields map[string]*Node
	Items  []*Node
	Str    string
	Num    json.Number
	Bool   bool
}

// Get returns the child stored under key, or nil when n is not an object or
// has no such key. It is safe to chain on nil nodes.
func (n *Node) Get(key string) *Node {
	if n == nil || n.Kind != KindObject {
		return nil
	}
	return n.Fields[key]
}

// ParseState decodes a JSON document into a Node tree.
func ParseState(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeNode(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page state: %w", err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse page state: unexpected data after top-level value")
	}

	return root, nil
}

func decodeNode(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return &Node{Kind: KindString, Str: v}, nil
	case json.Number:
		return &Node{Kind: KindNumber, Num: v}, nil
	case bool:
		return &Node{Kind: KindBool, Bool: v}, nil
	case nil:
		return &Node{Kind: KindNull}, nil
	}

	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: KindObject, Fields: make(map[string]*Node)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}

		// Duplicate keys keep their first position and their last value.
		if _, seen := n.Fields[key]; !seen {
			n.Keys = append(n.Keys, key)
		}
		n.Fields[key] = child
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

func decodeArray(dec *json.Decoder) (*Node, error) {
	n := &Node{Kind: KindArray, Items: []*Node{}}

	for dec.More() {
		child, err := decodeNode(dec)
		if err != nil {
			return nil, err
		}
		n.Items = append(n.Items, child)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return n, nil
}

// Walk visits n and its descendants depth-first, arrays by index and objects
// in key order. It stops as soon as visit returns false and reports whether
// the walk ran to completion.
func Walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}

	switch n.Kind {
	case KindObject:
		for _, key := range n.Keys {
			if !Walk(n.Fields[key], visit) {
				return false
			}
		}
	case KindArray:
		for _, item := range n.Items {
			if !Walk(item, visit) {
				return false
			}
		}
	}
	return true
}

// FindContent returns the first non-empty config.content string found under
// n. When several exist the first one in traversal order wins; there is no
// other priority.
func FindContent(n *Node) (string, bool) {
	var content string

	Walk(n, func(node *Node) bool {
		leaf := node.Get("config").Get("content")
		if leaf != nil && leaf.Kind == KindString && leaf.Str != "" {
			content = leaf.Str
			return false
		}
		return true
	})

	return content, content != ""
}
