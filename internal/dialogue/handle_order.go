package dialogue

import (
	"fmt"
	"strings"

	"github.com/tavolo-poc/waiterbot/internal/nlp"
)

var (
	yesLemmas = map[string]bool{"yes": true, "yeah": true, "yep": true, "sure": true, "ok": true, "okay": true}
	noLemmas  = map[string]bool{"no": true, "nothing": true, "nope": true}

	// dishStop keeps structural words out of the dish-name position.
	dishStop = map[string]bool{"order": true, "menu": true, "bill": true}
)

// handleOrder accumulates the order one course slot per dish type, handles
// recap requests and the anything-else confirmation loop, and closes when
// every course is covered or the user declines to add more.
func (m *Manager) handleOrder(f *OrderFrame, tree *nlp.Tree) (string, Frame) {
	if m.menu.Empty() {
		return replyEmptyMenu + ", I cannot take your order", nil
	}

	// recap request: "my order so far"
	if orderPrimary, _ := nlp.FindRelation(tree, nlp.RelDirectObject); orderPrimary != nil &&
		orderPrimary.Lemma == "order" && tree.HasLemma("so", "far") {
		f.askedRecap = true
	}

	if f.waitingYesNo {
		f.answer = readYesNo(tree)
	}

	// dish extraction; "I would like to order" alone carries no dish
	filledNow := false
	if name := nlp.ExtractName(tree, nlp.RelDirectObject, dishStop); name != "" {
		entry, err := m.menu.Orderable(name)
		if err != nil {
			reply := "I am sorry, that is not on the menu"
			if near, found := m.menu.Nearest(name); found {
				reply += fmt.Sprintf(". Did you mean %s?", near)
			}
			return reply, f
		}
		filledNow = f.fill(entry.Course, entry.Name)
		if filledNow {
			f.waitingYesNo = false
		}
	}

	switch {
	case f.askedRecap:
		f.askedRecap = false
		f.waitingYesNo = true
		return recapReply(f), f
	case f.waitingYesNo && f.answer == AnswerYes:
		f.waitingYesNo = false
		return "Ok, please tell me", f
	case f.complete() || (f.waitingYesNo && f.answer == AnswerNo):
		return "Ok, your order is complete. Enjoy!", nil
	case !f.anyFilled():
		return "I am ready to take your order", f
	default:
		f.waitingYesNo = true
		return "Ok. Do you want anything else?", f
	}
}

// readYesNo classifies a turn as yes, no or unclear from the root lemma
// and interjection/determiner tokens. Ordering trigger words block the
// "no" reading so that "no starter, but I would like a coke" keeps the
// order going.
func readYesNo(tree *nlp.Tree) Answer {
	ordering := false
	tree.Walk(func(tok *nlp.Token) bool {
		if orderTriggers.matches(tok) {
			ordering = true
			return false
		}
		return true
	})

	answer := AnswerUnclear
	consider := func(lemma string) {
		if answer != AnswerUnclear {
			return
		}
		switch {
		case yesLemmas[lemma]:
			answer = AnswerYes
		case noLemmas[lemma] && !ordering:
			answer = AnswerNo
		}
	}

	if tree.Root != nil {
		consider(tree.Root.Lemma)
	}
	tree.Walk(func(tok *nlp.Token) bool {
		if tok.Relation == nlp.RelInterjection || tok.Relation == nlp.RelDeterminer {
			consider(tok.Lemma)
		}
		return answer == AnswerUnclear
	})
	return answer
}

func recapReply(f *OrderFrame) string {
	if !f.anyFilled() {
		return "You have not ordered anything yet"
	}
	var parts []string
	for _, slot := range f.filled() {
		parts = append(parts, fmt.Sprintf("%s for %s", slot.Name, slot.Course))
	}
	return "You ordered: " + strings.Join(parts, ", ") + ". Do you want anything else?"
}
