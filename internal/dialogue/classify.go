package dialogue

import (
	"github.com/tavolo-poc/waiterbot/internal/nlp"
)

// questionLemmas mark an utterance as interrogative. Interrogative form
// always classifies as a question about the menu, regardless of trigger
// counts.
var questionLemmas = []string{"what", "how"}

// triggerTable maps a dependency relation to the lemmas counting as
// evidence for a frame variant.
type triggerTable map[string][]string

func (t triggerTable) matches(tok *nlp.Token) bool {
	for _, lemma := range t[tok.Relation] {
		if tok.Lemma == lemma {
			return true
		}
	}
	return false
}

var (
	endTriggers = triggerTable{
		nlp.RelDirectObject: {"bill"},
		nlp.RelRoot:         {"shut", "goodbye"},
		nlp.RelParticle:     {"down"},
	}
	orderTriggers = triggerTable{
		nlp.RelRoot:              {"like", "have"},
		nlp.RelClausalComplement: {"order"},
		nlp.RelDirectObject:      {"order"},
		nlp.RelAdverbialModifier: {"so", "far"},
	}
	addInfoTriggers = triggerTable{
		nlp.RelRoot:              {"add", "is", "like", "want"},
		nlp.RelClausalComplement: {"add"},
	}
	askInfoTriggers = triggerTable{
		nlp.RelRoot:              {"like", "tell"},
		nlp.RelClausalComplement: {"know"},
	}
)

// classifyOrder fixes the evaluation and tie-break order: when trigger
// counts are equal the earlier, more irreversible intent wins.
var classifyOrder = []struct {
	kind  Kind
	table triggerTable
}{
	{KindEnd, endTriggers},
	{KindOrder, orderTriggers},
	{KindAddInfo, addInfoTriggers},
	{KindAskInfo, askInfoTriggers},
}

// Classify walks the dependency tree and returns a fresh frame of the best
// matching variant, or nil when nothing matches. A fresh frame never
// carries slot values over from a prior instance.
func Classify(tree *nlp.Tree) Frame {
	if tree == nil || tree.Root == nil {
		return nil
	}
	if tree.HasLemma(questionLemmas...) {
		return NewAskInfoFrame()
	}

	counts := make([]int, len(classifyOrder))
	tree.Walk(func(tok *nlp.Token) bool {
		for i, c := range classifyOrder {
			if c.table.matches(tok) {
				counts[i]++
			}
		}
		return true
	})

	best := -1
	bestCount := 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return nil
	}

	switch classifyOrder[best].kind {
	case KindEnd:
		return NewEndFrame()
	case KindOrder:
		return NewOrderFrame()
	case KindAddInfo:
		return NewAddInfoFrame()
	default:
		return NewAskInfoFrame()
	}
}
