package nlp

import "testing"

func tok(text, lemma, rel string, children ...*Token) *Token {
	return &Token{Text: text, Lemma: lemma, Relation: rel, Children: children}
}

func newTree(root *Token) *Tree {
	t := &Tree{Root: root}
	t.Walk(func(tk *Token) bool {
		t.Tokens = append(t.Tokens, tk)
		return true
	})
	return t
}

func TestFindRelationAbsent(t *testing.T) {
	tree := newTree(tok("hello", "hello", RelRoot))
	primary, modifier := FindRelation(tree, RelDirectObject)
	if primary != nil || modifier != nil {
		t.Fatalf("expected no hit, got %v / %v", primary, modifier)
	}
	if got := Reassemble(primary, modifier, false); got != "" {
		t.Fatalf("expected empty reassembly, got %q", got)
	}
}

func TestFindRelationWithConjunction(t *testing.T) {
	// "add fish and chips to the menu"
	tree := newTree(
		tok("add", "add", RelRoot,
			tok("fish", "fish", RelDirectObject,
				tok("and", "and", "cc"),
				tok("chips", "chip", RelConjunct)),
			tok("menu", "menu", RelPrepObject)),
	)
	primary, modifier := FindRelation(tree, RelDirectObject)
	if primary == nil || primary.Text != "fish" {
		t.Fatalf("expected primary fish, got %v", primary)
	}
	if modifier == nil || modifier.Text != "chips" {
		t.Fatalf("expected modifier chips, got %v", modifier)
	}
	if got := Reassemble(primary, modifier, false); got != "fish and chips" {
		t.Fatalf("expected %q, got %q", "fish and chips", got)
	}
}

func TestReassembleModifierPrecedes(t *testing.T) {
	cases := []struct {
		name string
		rel  string
		want string
	}{
		{"adjectival", RelAdjectivalModifier, "red meat"},
		{"compound", RelCompound, "red meat"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			primary := tok("meat", "meat", RelDirectObject, tok("red", "red", tc.rel))
			tree := newTree(tok("like", "like", RelRoot, primary))
			p, m := FindRelation(tree, RelDirectObject)
			if got := Reassemble(p, m, false); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestReassembleLemma(t *testing.T) {
	primary := tok("courses", "course", RelRoot, tok("main", "main", RelCompound))
	tree := newTree(primary)
	p, m := FindRelation(tree, RelRoot)
	if got := Reassemble(p, m, true); got != "main course" {
		t.Fatalf("expected %q, got %q", "main course", got)
	}
}

func TestFindRelationExcluding(t *testing.T) {
	// "i would like to order a hamburger": both "order" and "hamburger"
	// can occupy the object position, the stop set skips the former
	tree := newTree(
		tok("like", "like", RelRoot,
			tok("order", "order", RelDirectObject),
			tok("hamburger", "hamburger", RelDirectObject)),
	)
	primary, _ := FindRelationExcluding(tree, RelDirectObject, map[string]bool{"order": true})
	if primary == nil || primary.Text != "hamburger" {
		t.Fatalf("expected hamburger, got %v", primary)
	}
}

func TestWalkVisitsEachTokenOnce(t *testing.T) {
	tree := newTree(
		tok("a", "a", RelRoot,
			tok("b", "b", RelDirectObject, tok("d", "d", RelCompound)),
			tok("c", "c", RelSubject)),
	)
	seen := map[string]int{}
	tree.Walk(func(tk *Token) bool {
		seen[tk.Text]++
		return true
	})
	if len(seen) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(seen))
	}
	for text, n := range seen {
		if n != 1 {
			t.Fatalf("token %s visited %d times", text, n)
		}
	}
}
