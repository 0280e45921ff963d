// Package catalog holds the hierarchical registry of activity definitions.
// Each node carries a stable identifier assigned at creation; names are
// unique only among what the user chooses to keep unique, so lookups use
// pre-order, insertion-order, first-match semantics.
package catalog

import (
	"fmt"

	"github.com/google/uuid"
)

// Node is one activity definition. Children keep insertion order, which
// fixes the traversal order for lookups.
type Node struct {
	ID       string
	Name     string
	Children []*Node
}

// Catalog is a forest of activity nodes.
type Catalog struct {
	roots []*Node

	// newID generates identifiers for created nodes. Overridable in tests.
	newID func() string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{newID: uuid.NewString}
}

// Load wraps an existing forest, typically deserialized by a store.
func Load(roots []*Node) *Catalog {
	return &Catalog{roots: roots, newID: uuid.NewString}
}

// Roots exposes the forest for serialization.
func (c *Catalog) Roots() []*Node {
	return c.roots
}

// LookupID returns the identifier of the first node named name in
// pre-order traversal.
func (c *Catalog) LookupID(name string) (string, error) {
	var id string
	found := c.walk(func(n *Node, _ string) bool {
		if n.Name == name {
			id = n.ID
			return true
		}
		return false
	})
	if !found {
		return "", fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	return id, nil
}

// LookupPath returns the absolute slash-delimited path of the first node
// named name in pre-order traversal.
func (c *Catalog) LookupPath(name string) (string, error) {
	var path string
	found := c.walk(func(n *Node, p string) bool {
		if n.Name == name {
			path = p
			return true
		}
		return false
	})
	if !found {
		return "", fmt.Errorf("%w: %q", ErrActivityNotFound, name)
	}
	return path, nil
}

// Insert creates a new leaf node at the given root-to-leaf segment path.
// Intermediate segments must already exist unless createParents is set, in
// which case they are created with fresh identifiers. The leaf is always
// created, even when a sibling already carries that name. Validation runs
// before any mutation, so a failed insert leaves the catalog unchanged.
func (c *Catalog) Insert(segments []string, createParents bool) (*Node, error) {
	if len(segments) == 0 {
		return nil, ErrMalformedPath
	}
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment", ErrMalformedPath)
		}
	}

	if !createParents {
		children := c.roots
		for _, seg := range segments[:len(segments)-1] {
			next := findChild(children, seg)
			if next == nil {
				return nil, fmt.Errorf("%w: %q", ErrMissingAncestor, seg)
			}
			children = next.Children
		}
	}

	children := &c.roots
	for _, seg := range segments[:len(segments)-1] {
		next := findChild(*children, seg)
		if next == nil {
			next = &Node{ID: c.newID(), Name: seg}
			*children = append(*children, next)
		}
		children = &next.Children
	}

	leaf := &Node{ID: c.newID(), Name: segments[len(segments)-1]}
	*children = append(*children, leaf)
	return leaf, nil
}

// walk visits the forest in pre-order and stops when visit returns true.
// The path passed to visit is the absolute path of the node.
func (c *Catalog) walk(visit func(n *Node, path string) bool) bool {
	var descend func(nodes []*Node, prefix string) bool
	descend = func(nodes []*Node, prefix string) bool {
		for _, n := range nodes {
			path := prefix + "/" + n.Name
			if visit(n, path) {
				return true
			}
			if descend(n.Children, path) {
				return true
			}
		}
		return false
	}
	return descend(c.roots, "")
}

func findChild(nodes []*Node, name string) *Node {
	for _, n := range nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}
