package dialogue

import (
	"fmt"
	"strings"

	"github.com/tavolo-poc/waiterbot/internal/menu"
	"github.com/tavolo-poc/waiterbot/internal/nlp"
)

// handleAskInfo answers a question about the menu or one of its courses.
// The frame never spans turns: it always closes after one reply.
func (m *Manager) handleAskInfo(f *AskInfoFrame, tree *nlp.Tree) (string, Frame) {
	if m.menu.Empty() {
		return replyEmptyMenu, nil
	}

	subject, course := askSubject(tree)
	f.Subject = subject
	f.Object = string(course)
	switch subject {
	case "menu":
		return listWholeMenu(m.menu), nil
	case "course":
		entries := m.menu.ByCourse(course)
		if len(entries) == 0 {
			return fmt.Sprintf("There is nothing for %s today", course), nil
		}
		return fmt.Sprintf("For %s we have %s", course, joinNames(entries)), nil
	default:
		return "I am not sure I understood your question", nil
	}
}

// askSubject reads what the question is about: the whole menu, one course,
// or nothing recognizable. Both the direct object and the prepositional
// object positions can carry the subject.
func askSubject(tree *nlp.Tree) (string, menu.Course) {
	for _, rel := range []string{nlp.RelDirectObject, nlp.RelPrepObject} {
		primary, modifier := nlp.FindRelation(tree, rel)
		if primary == nil {
			continue
		}
		if primary.Lemma == "menu" {
			return "menu", ""
		}
		if c, ok := menu.ParseCourse(nlp.Reassemble(primary, modifier, true)); ok {
			return "course", c
		}
	}
	return "", ""
}

func listWholeMenu(store *menu.Store) string {
	var parts []string
	for _, c := range menu.Courses() {
		entries := store.ByCourse(c)
		if len(entries) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s for %s", joinNames(entries), c))
	}
	if len(parts) == 0 {
		// entries exist but none has a course yet
		return "The menu is still being written, nothing has a course yet"
	}
	return "Today we have " + strings.Join(parts, "; ")
}

// joinNames renders entry names as natural language: "a", "a and b",
// "a, b and c".
func joinNames(entries []menu.Entry) string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	if len(names) == 1 {
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
