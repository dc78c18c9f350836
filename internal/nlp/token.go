package nlp

// Dependency relation labels used by the dialogue core. Parser clients
// normalise whatever inventory their backend emits into this one.
const (
	RelRoot               = "root"
	RelSubject            = "nsubj"
	RelDirectObject       = "dobj"
	RelPrepObject         = "pobj"
	RelAttribute          = "attr"
	RelClausalComplement  = "xcomp"
	RelAdverbialModifier  = "advmod"
	RelAdjectivalModifier = "amod"
	RelParticle           = "prt"
	RelConjunct           = "conj"
	RelCompound           = "compound"
	RelDeterminer         = "det"
	RelInterjection       = "intj"
)

// Token is one word of a parsed utterance. Tokens are built once by a
// Parser and never mutated afterwards.
type Token struct {
	Text     string
	Lemma    string
	POS      string
	Relation string
	Children []*Token
}

// Tree is the dependency tree of a single utterance. Tokens holds the
// words in sentence order; Root is the head of the tree.
type Tree struct {
	Root   *Token
	Tokens []*Token
}

// Walk visits tokens breadth first starting at the root, each exactly
// once. The visit function returns false to stop early.
func (t *Tree) Walk(visit func(*Token) bool) {
	if t == nil || t.Root == nil {
		return
	}
	queue := []*Token{t.Root}
	for len(queue) > 0 {
		tok := queue[0]
		queue = queue[1:]
		if !visit(tok) {
			return
		}
		queue = append(queue, tok.Children...)
	}
}

// HasLemma reports whether any token of the tree carries one of the given
// lemmas.
func (t *Tree) HasLemma(lemmas ...string) bool {
	found := false
	t.Walk(func(tok *Token) bool {
		for _, l := range lemmas {
			if tok.Lemma == l {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
