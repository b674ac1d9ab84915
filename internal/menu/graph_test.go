package menu

import (
	"strings"
	"testing"
)

func leaf(id string) Node {
	return Node{ID: id, Render: &Render{Template: TemplateCrypto}}
}

func TestNewRejectsStructuralDefects(t *testing.T) {
	tests := []struct {
		name    string
		root    string
		nodes   []Node
		wantErr string
	}{
		{
			name:    "missing root",
			root:    "root",
			nodes:   []Node{leaf("other")},
			wantErr: "not defined",
		},
		{
			name: "duplicate id",
			root: "root",
			nodes: []Node{
				{ID: "root", Prompt: "p", Options: []Option{{Label: "a", Token: "a"}}},
				leaf("a"),
				leaf("a"),
			},
			wantErr: "duplicate",
		},
		{
			name: "unknown token",
			root: "root",
			nodes: []Node{
				{ID: "root", Prompt: "p", Options: []Option{{Label: "a", Token: "ghost"}}},
			},
			wantErr: "unknown node",
		},
		{
			name: "node both menu and leaf",
			root: "root",
			nodes: []Node{
				{ID: "root", Prompt: "p", Options: []Option{{Label: "a", Token: "a"}}},
				{ID: "a", Options: []Option{{Label: "b", Token: "root"}}, Render: &Render{Template: TemplateCrypto}},
			},
			wantErr: "either a menu or a leaf",
		},
		{
			name: "leaf root",
			root: "root",
			nodes: []Node{
				leaf("root"),
			},
			wantErr: "must be a menu",
		},
		{
			name: "unreachable node",
			root: "root",
			nodes: []Node{
				{ID: "root", Prompt: "p", Options: []Option{{Label: "a", Token: "a"}}},
				leaf("a"),
				leaf("orphan"),
			},
			wantErr: "unreachable",
		},
		{
			name: "self transition",
			root: "root",
			nodes: []Node{
				{ID: "root", Prompt: "p", Options: []Option{{Label: "a", Token: "root"}}},
			},
			wantErr: "itself",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.root, tc.nodes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestStorefrontGraphIsValid(t *testing.T) {
	g, err := Storefront()
	if err != nil {
		t.Fatalf("Storefront() failed: %v", err)
	}

	root := g.Root()
	if root == nil || root.ID != NodeRoot {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Options) != 3 {
		t.Fatalf("root has %d options, want 3", len(root.Options))
	}
}

func TestStorefrontVisaAmountLeaves(t *testing.T) {
	g, err := Storefront()
	if err != nil {
		t.Fatal(err)
	}

	visa, ok := g.Resolve(NodeVisa)
	if !ok {
		t.Fatal("visa node not resolvable")
	}
	if len(visa.Options) != 5 {
		t.Fatalf("visa has %d options, want 5", len(visa.Options))
	}

	node, ok := g.Resolve("500")
	if !ok {
		t.Fatal("token 500 not resolvable")
	}
	if !node.IsLeaf() {
		t.Fatal("node 500 is not a leaf")
	}
	if node.Render.Template != TemplatePayment {
		t.Fatalf("node 500 template = %q, want payment", node.Render.Template)
	}
	if node.Render.Amount != "500 EUR" {
		t.Fatalf("node 500 amount = %q, want 500 EUR", node.Render.Amount)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	g, err := Storefront()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Resolve("does-not-exist"); ok {
		t.Fatal("unknown token resolved")
	}
}

func TestTransitionTokensExcludeRoot(t *testing.T) {
	g, err := Storefront()
	if err != nil {
		t.Fatal(err)
	}

	tokens := g.TransitionTokens()
	if len(tokens) == 0 {
		t.Fatal("no transition tokens")
	}
	for _, tok := range tokens {
		if tok == NodeRoot {
			t.Fatal("root listed as transition token")
		}
		if _, ok := g.Resolve(tok); !ok {
			t.Fatalf("token %q not resolvable", tok)
		}
	}
}
