// Package menu defines the static navigation tree walked by customers.
// The graph is built and validated once at startup; every transition
// token is the id of the node it leads to, so the set of valid callback
// keys is closed and known before the bot accepts traffic.
package menu

import (
	"fmt"
	"sort"
)

// Template names the reply template a leaf renders.
type Template string

const (
	// TemplatePayment renders bank-transfer instructions with an amount.
	TemplatePayment Template = "payment"
	// TemplateCrypto renders the crypto-payment contact card.
	TemplateCrypto Template = "crypto"
	// TemplateMethods renders the guides-catalog contact card.
	TemplateMethods Template = "methods"
)

// Option is one button of a menu node. Token is the id of the target node.
type Option struct {
	Label string
	Token string
}

// Render describes what a leaf node produces.
type Render struct {
	Template Template
	// Amount is the free-form amount text for TemplatePayment leaves.
	Amount string
}

// Node is either a menu (Prompt + Options) or a leaf (Render set).
type Node struct {
	ID      string
	Prompt  string
	Options []Option
	Render  *Render
}

// IsLeaf reports whether the node terminates a branch.
func (n *Node) IsLeaf() bool {
	return n.Render != nil
}

// Graph is the immutable navigation tree.
type Graph struct {
	rootID string
	nodes  map[string]*Node
}

// New builds a graph and fails fast on structural defects: duplicate ids,
// a missing root, a node that is both menu and leaf (or neither), and
// option tokens that do not name an existing node.
func New(rootID string, nodes []Node) (*Graph, error) {
	if rootID == "" {
		return nil, fmt.Errorf("menu: empty root id")
	}

	byID := make(map[string]*Node, len(nodes))
	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, fmt.Errorf("menu: node at index %d has empty id", i)
		}
		if _, dup := byID[n.ID]; dup {
			return nil, fmt.Errorf("menu: duplicate node id %q", n.ID)
		}
		isMenu := len(n.Options) > 0
		isLeaf := n.Render != nil
		if isMenu == isLeaf {
			return nil, fmt.Errorf("menu: node %q must be either a menu or a leaf", n.ID)
		}
		if isMenu && n.Prompt == "" {
			return nil, fmt.Errorf("menu: menu node %q has empty prompt", n.ID)
		}
		if isLeaf && n.Render.Template == "" {
			return nil, fmt.Errorf("menu: leaf node %q has empty template", n.ID)
		}
		byID[n.ID] = &n
	}

	root, ok := byID[rootID]
	if !ok {
		return nil, fmt.Errorf("menu: root node %q not defined", rootID)
	}
	if root.IsLeaf() {
		return nil, fmt.Errorf("menu: root node %q must be a menu", rootID)
	}

	for _, n := range byID {
		seen := make(map[string]bool, len(n.Options))
		for _, opt := range n.Options {
			if opt.Label == "" {
				return nil, fmt.Errorf("menu: node %q has option with empty label", n.ID)
			}
			if _, ok := byID[opt.Token]; !ok {
				return nil, fmt.Errorf("menu: node %q option %q points to unknown node", n.ID, opt.Token)
			}
			if opt.Token == n.ID {
				return nil, fmt.Errorf("menu: node %q transitions to itself", n.ID)
			}
			if seen[opt.Token] {
				return nil, fmt.Errorf("menu: node %q lists token %q twice", n.ID, opt.Token)
			}
			seen[opt.Token] = true
		}
	}

	reached := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, opt := range byID[id].Options {
			if !reached[opt.Token] {
				reached[opt.Token] = true
				queue = append(queue, opt.Token)
			}
		}
	}
	for id := range byID {
		if !reached[id] {
			return nil, fmt.Errorf("menu: node %q is unreachable from root", id)
		}
	}

	return &Graph{rootID: rootID, nodes: byID}, nil
}

// Root returns the entry node of the graph.
func (g *Graph) Root() *Node {
	return g.nodes[g.rootID]
}

// Resolve looks up a node by transition token.
func (g *Graph) Resolve(token string) (*Node, bool) {
	n, ok := g.nodes[token]
	return n, ok
}

// TransitionTokens lists every token reachable via an option, sorted.
// The root is entered by command, not by token, so it is excluded.
func (g *Graph) TransitionTokens() []string {
	set := make(map[string]bool)
	for _, n := range g.nodes {
		for _, opt := range n.Options {
			set[opt.Token] = true
		}
	}
	tokens := make([]string, 0, len(set))
	for t := range set {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)
	return tokens
}
