package nlp

import "strings"

// compoundRelations are the relations that glue a second token onto a
// dependency hit to form one semantic name ("fish and chips", "red meat").
var compoundRelations = []string{RelConjunct, RelCompound, RelAdjectivalModifier, RelAdverbialModifier}

func isCompoundRelation(rel string) bool {
	for _, r := range compoundRelations {
		if rel == r {
			return true
		}
	}
	return false
}

// FindRelation locates the first token (breadth first) whose dependency
// relation equals rel, together with the first compound-forming token among
// its descendants. Both results are nil when the relation does not occur;
// absence is a legitimate outcome, not an error.
func FindRelation(t *Tree, rel string) (primary, modifier *Token) {
	return FindRelationExcluding(t, rel, nil)
}

// FindRelationExcluding behaves like FindRelation but skips tokens whose
// lemma is in the stop set. Handlers use it to hunt for a dish name while
// ignoring structural words like "order" or "menu" that happen to occupy
// the same relation.
func FindRelationExcluding(t *Tree, rel string, stop map[string]bool) (primary, modifier *Token) {
	t.Walk(func(tok *Token) bool {
		if tok.Relation == rel && !stop[tok.Lemma] {
			primary = tok
			return false
		}
		return true
	})
	if primary == nil {
		return nil, nil
	}

	// first compound-forming descendant, breadth first
	queue := append([]*Token{}, primary.Children...)
	for len(queue) > 0 {
		tok := queue[0]
		queue = queue[1:]
		if isCompoundRelation(tok.Relation) {
			modifier = tok
			break
		}
		queue = append(queue, tok.Children...)
	}
	return primary, modifier
}

// Reassemble merges a dependency hit and its compound modifier back into
// the multi-word name the user actually said. Conjunctions join with
// "and"; compounds and adjectival/adverbial modifiers precede the primary
// token.
func Reassemble(primary, modifier *Token, useLemma bool) string {
	if primary == nil {
		return ""
	}
	word := func(tok *Token) string {
		if useLemma {
			return tok.Lemma
		}
		return tok.Text
	}
	if modifier == nil {
		return word(primary)
	}
	if modifier.Relation == RelConjunct {
		return word(primary) + " and " + word(modifier)
	}
	return word(modifier) + " " + word(primary)
}

// ExtractName is the common find-then-reassemble step for slot values.
func ExtractName(t *Tree, rel string, stop map[string]bool) string {
	primary, modifier := FindRelationExcluding(t, rel, stop)
	return strings.TrimSpace(Reassemble(primary, modifier, false))
}
