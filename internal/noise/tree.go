// Package noise evaluates procedural noise graphs. A graph is assembled with
// the Builder combinators, frozen into a Tree and sampled over 1D, 2D or 3D
// integer grids in lane batches whose width follows the selected simd target.
package noise

import (
	"fmt"
	"strings"
)

// Node is one operation in a tree arena.
type Node struct {
	settings Settings
	kind     Kind
}

func newNode(s Settings) Node {
	return Node{settings: s, kind: s.Kind()}
}

func (n Node) Kind() Kind { return n.kind }

func (n Node) Settings() Settings { return n.settings }

// Tree is a built, immutable noise graph. Nodes are stored in an
// append-only arena where every child precedes its parent and the root is the
// last node. A Tree is safe for concurrent use.
type Tree struct {
	nodes []Node
}

func (t *Tree) Len() int { return len(t.nodes) }

func (t *Tree) Root() NodeIndex { return NodeIndex(len(t.nodes) - 1) }

// Node returns the node stored at i.
func (t *Tree) Node(i NodeIndex) Node { return t.nodes[i] }

func (t *Tree) String() string {
	return describe(t.nodes)
}

func describe(nodes []Node) string {
	var b strings.Builder
	for i, n := range nodes {
		fmt.Fprintf(&b, "%3d %-9s %+v\n", i, n.kind, n.settings)
	}
	return b.String()
}

// validate checks the arena invariant: non-empty, and every child index
// strictly below the index of the node that reads it.
func validate(nodes []Node) error {
	if len(nodes) == 0 {
		return fmt.Errorf("%w: empty tree", ErrForwardReference)
	}
	for i, n := range nodes {
		for _, child := range n.settings.Children() {
			if int(child) >= i {
				return fmt.Errorf("%w: node %d (%s) reads node %d", ErrForwardReference, i, n.kind, child)
			}
		}
	}
	return nil
}
