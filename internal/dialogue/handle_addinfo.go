package dialogue

import (
	"errors"
	"fmt"

	errx "github.com/tavolo-poc/waiterbot/internal/core/error"
	"github.com/tavolo-poc/waiterbot/internal/nlp"
)

// prepStop keeps the literal "menu" of "add X to the menu" from being read
// as a course.
var prepStop = map[string]bool{"menu": true}

// handleAddInfo covers two statements: putting a new entry on the menu and
// stating the course of an entry. The second can arrive as its own
// sentence ("the hamburger is a main course") or as the bare answer to
// "What course is it?".
func (m *Manager) handleAddInfo(f *AddInfoFrame, tree *nlp.Tree) (string, Frame) {
	if f.waitingOpen {
		// The whole utterance answers the open question: its root plus
		// modifier is the course name ("main course").
		f.waitingOpen = false
		f.Subject = "course"
		course := nlp.ExtractName(tree, nlp.RelRoot, nil)
		f.Info = course
		return m.setCourseReply(f.Object, course), nil
	}

	if tree.Root != nil && tree.Root.Lemma == "is" {
		// "the hamburger is a main course"
		f.Subject = "course"
		name := nlp.ExtractName(tree, nlp.RelSubject, nil)
		course := nlp.ExtractName(tree, nlp.RelAttribute, nil)
		if name == "" || course == "" {
			return replyNotUnderstood, nil
		}
		f.Object, f.Info = name, course
		return m.setCourseReply(name, course), nil
	}

	// "add X to the menu"
	f.Subject = "menu"
	name := nlp.ExtractName(tree, nlp.RelDirectObject, nil)
	if name == "" {
		return replyNotUnderstood, nil
	}
	if err := m.menu.Add(name); err != nil {
		// only ErrEntryExists can come back from Add
		return fmt.Sprintf("%s is already in the menu", name), nil
	}
	f.Object = name

	// the course may arrive in the same sentence ("add coke to the menu
	// as a drink")
	if course := nlp.ExtractName(tree, nlp.RelPrepObject, prepStop); course != "" {
		if err := m.menu.SetCourse(name, course); err == nil {
			f.Info = course
			return replyOk, nil
		}
	}

	f.waitingOpen = true
	return "Ok. What course is it?", f
}

// setCourseReply updates the course of an entry and converts every menu
// error into its reply sentence.
func (m *Manager) setCourseReply(name, course string) string {
	err := m.menu.SetCourse(name, course)
	switch {
	case err == nil:
		return replyOk
	case errors.Is(err, errx.ErrCourseNotValid):
		return fmt.Sprintf("I do not know the course %s", course)
	case errors.Is(err, errx.ErrEntryNotFound):
		return fmt.Sprintf("%s is not on the menu", name)
	case errors.Is(err, errx.ErrCourseAlreadySet):
		entry, _ := m.menu.Find(name)
		return fmt.Sprintf("%s is already a %s", name, entry.Course)
	default:
		return replyNotUnderstood
	}
}
