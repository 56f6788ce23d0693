// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/xmlpath.v2"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*xmlpath.Path)
)

// Parse parses an in-memory XML document and returns its root node
func Parse(data []byte) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// compile returns a compiled path, memoised by expression
func compile(xpath string) (*xmlpath.Path, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if p, ok := cache[xpath]; ok {
		return p, nil
	}
	p, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}
	cache[xpath] = p
	return p, nil
}

// Nodes returns every node matched by xpath relative to node
func Nodes(node *xmlpath.Node, xpath string) ([]*xmlpath.Node, error) {
	path, err := compile(xpath)
	if err != nil {
		return nil, err
	}

	var nodes []*xmlpath.Node
	iter := path.Iter(node)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes, nil
}

// First returns the cleaned text of the first match, or "" when nothing matches
// or the expression is invalid
func First(node *xmlpath.Node, xpath string) string {
	path, err := compile(xpath)
	if err != nil {
		return ""
	}
	value, ok := path.String(node)
	if !ok {
		return ""
	}
	return CleanText(value)
}

// Exists reports whether xpath matches anything under node
func Exists(node *xmlpath.Node, xpath string) bool {
	path, err := compile(xpath)
	if err != nil {
		return false
	}
	return path.Exists(node)
}

// CleanText collapses runs of whitespace and newlines into single spaces
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
