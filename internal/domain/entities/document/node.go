// Package document provides domain entities for rich-text document trees
package document

import (
	"encoding/json"
	"fmt"
)

// Node represents one unit of a rich-text document tree. A node is either a
// text leaf (Text is non-nil, Children empty) or an element (Text is nil).
// Element nodes may carry an empty Type; these render as plain wrappers.
type Node struct {
	Type     string         `json:"type,omitempty"`
	Text     *string        `json:"text,omitempty"`
	Marks    map[string]any `json:"marks,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

// IsText reports whether the node is a text leaf.
func (n *Node) IsText() bool {
	return n.Text != nil
}

// TextContent returns the leaf text, or empty string for element nodes.
func (n *Node) TextContent() string {
	if n.Text == nil {
		return ""
	}
	return *n.Text
}

// HasMark reports whether a formatting mark is set truthy on a text leaf.
func (n *Node) HasMark(name string) bool {
	if n.Marks == nil {
		return false
	}
	v, ok := n.Marks[name]
	if !ok {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case nil:
		return false
	default:
		return true
	}
}

// AttrString returns a string-valued attribute, or empty string when absent
// or of another type.
func (n *Node) AttrString(key string) string {
	if n.Attrs == nil {
		return ""
	}
	if s, ok := n.Attrs[key].(string); ok {
		return s
	}
	return ""
}

// AttrInt returns an integer-valued attribute. JSON numbers arrive as
// float64, so both representations are accepted.
func (n *Node) AttrInt(key string, fallback int) int {
	if n.Attrs == nil {
		return fallback
	}
	switch v := n.Attrs[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

// ParseNodes decodes a JSON array of nodes into a document tree.
func ParseNodes(data []byte) ([]Node, error) {
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to parse document nodes: %w", err)
	}
	return nodes, nil
}

// Text constructs a text leaf with optional marks.
func Text(text string, marks map[string]any) Node {
	return Node{Text: &text, Marks: marks}
}

// Element constructs an element node.
func Element(nodeType string, attrs map[string]any, children ...Node) Node {
	return Node{Type: nodeType, Attrs: attrs, Children: children}
}
