package entities

import (
	"fmt"
	"sort"
	"strings"
)

// KeySeparator splits translation key paths into segments.
const KeySeparator = "."

type nodeKind uint8

const (
	kindOpaque nodeKind = iota
	kindText
	kindTable
)

// Node is one vertex of a translation table: a text leaf, a sub-table, or an
// opaque value (number, list...) that can be reached but never rendered.
type Node struct {
	kind     nodeKind
	text     string
	children map[string]*Node
}

// Text builds a string leaf.
func Text(s string) *Node {
	return &Node{kind: kindText, text: s}
}

// Table builds an internal node from its children.
func Table(children map[string]*Node) *Node {
	if children == nil {
		children = map[string]*Node{}
	}
	return &Node{kind: kindTable, children: children}
}

// Opaque builds a leaf holding a non-string value.
func Opaque() *Node {
	return &Node{kind: kindOpaque}
}

// IsText reports whether n is a string leaf.
func (n *Node) IsText() bool { return n != nil && n.kind == kindText }

// IsTable reports whether n has children.
func (n *Node) IsTable() bool { return n != nil && n.kind == kindTable }

// TranslationTable is the typed tree for one locale.
type TranslationTable struct {
	root *Node
}

// NewTranslationTable wraps root; a nil or non-table root yields an empty table.
func NewTranslationTable(root *Node) *TranslationTable {
	if !root.IsTable() {
		root = Table(nil)
	}
	return &TranslationTable{root: root}
}

// BuildTranslationTable converts a decoded document (map[string]any with
// nested maps) into a typed table.
func BuildTranslationTable(doc map[string]any) (*TranslationTable, error) {
	root, err := buildNode(doc, "")
	if err != nil {
		return nil, err
	}
	return NewTranslationTable(root), nil
}

func buildNode(v any, at string) (*Node, error) {
	switch val := v.(type) {
	case string:
		return Text(val), nil
	case map[string]any:
		children := make(map[string]*Node, len(val))
		for k, child := range val {
			if strings.Contains(k, KeySeparator) {
				return nil, fmt.Errorf("translation key %q under %q contains %q", k, at, KeySeparator)
			}
			n, err := buildNode(child, join(at, k))
			if err != nil {
				return nil, err
			}
			children[k] = n
		}
		return Table(children), nil
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, child := range val {
			converted[fmt.Sprint(k)] = child
		}
		return buildNode(converted, at)
	default:
		return Opaque(), nil
	}
}

// Find walks keyPath segment by segment. It returns the node reached, or
// false when a segment is absent or a leaf is hit before the last segment.
func (t *TranslationTable) Find(keyPath string) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	node := t.root
	for _, seg := range strings.Split(keyPath, KeySeparator) {
		if !node.IsTable() {
			return nil, false
		}
		child, ok := node.children[seg]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// Lookup returns the string stored at keyPath. Any other outcome (missing
// segment, descent through a leaf, non-string end node) reports false.
func (t *TranslationTable) Lookup(keyPath string) (string, bool) {
	node, ok := t.Find(keyPath)
	if !ok || !node.IsText() {
		return "", false
	}
	return node.text, true
}

// Keys lists every text leaf path in lexical order.
func (t *TranslationTable) Keys() []string {
	if t == nil {
		return nil
	}
	var out []string
	var walk func(n *Node, at string)
	walk = func(n *Node, at string) {
		switch n.kind {
		case kindText:
			out = append(out, at)
		case kindTable:
			for k, child := range n.children {
				walk(child, join(at, k))
			}
		}
	}
	walk(t.root, "")
	sort.Strings(out)
	return out
}

func join(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + KeySeparator + seg
}
