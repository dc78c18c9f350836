package dialogue

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tavolo-poc/waiterbot/internal/menu"
	"github.com/tavolo-poc/waiterbot/internal/nlp"
	"github.com/tavolo-poc/waiterbot/internal/transcript"
)

// stubParser returns pre-built dependency trees keyed by utterance.
type stubParser struct {
	trees map[string]*nlp.Tree
}

func (s stubParser) Parse(_ context.Context, text string) (*nlp.Tree, error) {
	t, ok := s.trees[text]
	if !ok {
		return nil, fmt.Errorf("no stub parse for %q", text)
	}
	return t, nil
}

// parses covers every utterance the scenario tests speak.
func parses() stubParser {
	return stubParser{trees: map[string]*nlp.Tree{
		"add hamburger to the menu": newTree(tok("add", "add", nlp.RelRoot,
			tok("hamburger", "hamburger", nlp.RelDirectObject),
			tok("menu", "menu", nlp.RelPrepObject))),
		"main course": newTree(tok("course", "course", nlp.RelRoot,
			tok("main", "main", nlp.RelCompound))),
		"the hamburger is a starter": newTree(tok("is", "is", nlp.RelRoot,
			tok("hamburger", "hamburger", nlp.RelSubject),
			tok("starter", "starter", nlp.RelAttribute))),
		"what do you have": newTree(tok("have", "have", nlp.RelRoot,
			tok("what", "what", nlp.RelDirectObject),
			tok("you", "you", nlp.RelSubject))),
		"what do you have for dessert": newTree(tok("have", "have", nlp.RelRoot,
			tok("what", "what", nlp.RelDirectObject),
			tok("dessert", "dessert", nlp.RelPrepObject))),
		"i would like to order a hamburger": newTree(tok("like", "like", nlp.RelRoot,
			tok("i", "i", nlp.RelSubject),
			tok("order", "order", nlp.RelClausalComplement,
				tok("hamburger", "hamburger", nlp.RelDirectObject)))),
		"i would like a coke": newTree(tok("like", "like", nlp.RelRoot,
			tok("i", "i", nlp.RelSubject),
			tok("coke", "coke", nlp.RelDirectObject))),
		"i would like a pizza": newTree(tok("like", "like", nlp.RelRoot,
			tok("i", "i", nlp.RelSubject),
			tok("pizza", "pizza", nlp.RelDirectObject))),
		"no i would like a coke": newTree(tok("like", "like", nlp.RelRoot,
			tok("no", "no", nlp.RelInterjection),
			tok("coke", "coke", nlp.RelDirectObject))),
		"my order so far": newTree(tok("order", "order", nlp.RelDirectObject,
			tok("my", "my", nlp.RelDeterminer),
			tok("far", "far", nlp.RelAdverbialModifier,
				tok("so", "so", nlp.RelAdverbialModifier)))),
		"yes": newTree(tok("yes", "yes", nlp.RelRoot)),
		"no":  newTree(tok("no", "no", nlp.RelRoot)),
		"give me the bill": newTree(tok("give", "give", nlp.RelRoot,
			tok("bill", "bill", nlp.RelDirectObject, tok("the", "the", nlp.RelDeterminer)))),
		"tell me about the menu": newTree(tok("tell", "tell", nlp.RelRoot,
			tok("menu", "menu", nlp.RelPrepObject))),
		"hello": newTree(tok("hello", "hello", nlp.RelRoot)),
	}}
}

func fullMenu(t *testing.T) *menu.Store {
	t.Helper()
	s := menu.NewStore()
	for name, course := range map[string]string{
		"hamburger": "main course",
		"coke":      "drink",
		"cake":      "dessert",
	} {
		if err := s.Add(name); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		if err := s.SetCourse(name, course); err != nil {
			t.Fatalf("set course %s: %v", name, err)
		}
	}
	return s
}

func process(t *testing.T, m *Manager, utterance string) string {
	t.Helper()
	reply, err := m.Process(context.Background(), utterance)
	if err != nil {
		t.Fatalf("process %q: %v", utterance, err)
	}
	return reply
}

func TestUnmatchedUtteranceIsNotUnderstood(t *testing.T) {
	m := NewManager(parses(), menu.NewStore())
	if got := process(t, m, "hello"); got != replyNotUnderstood {
		t.Fatalf("expected %q, got %q", replyNotUnderstood, got)
	}
	// no frame became active: the next unmatched turn replies the same
	if got := process(t, m, "hello"); got != replyNotUnderstood {
		t.Fatalf("expected %q, got %q", replyNotUnderstood, got)
	}
}

func TestAddEntryThenCourse(t *testing.T) {
	m := NewManager(parses(), menu.NewStore())

	if got := process(t, m, "add hamburger to the menu"); got != "Ok. What course is it?" {
		t.Fatalf("unexpected reply: %q", got)
	}
	e, ok := m.Menu().Find("hamburger")
	if !ok || e.Course != "" {
		t.Fatalf("expected hamburger without course, got %+v (%v)", e, ok)
	}

	// the bare answer to the open question fills the course
	if got := process(t, m, "main course"); got != replyOk {
		t.Fatalf("unexpected reply: %q", got)
	}
	e, _ = m.Menu().Find("hamburger")
	if e.Course != menu.MainCourse {
		t.Fatalf("expected main course, got %q", e.Course)
	}
}

func TestAddDuplicateEntry(t *testing.T) {
	m := NewManager(parses(), menu.NewStore())
	process(t, m, "add hamburger to the menu")
	process(t, m, "main course")

	got := process(t, m, "add hamburger to the menu")
	if !strings.Contains(got, "already in the menu") {
		t.Fatalf("unexpected reply: %q", got)
	}
	if m.Menu().Len() != 1 {
		t.Fatalf("duplicate add changed the menu, len=%d", m.Menu().Len())
	}
}

func TestCourseStatement(t *testing.T) {
	m := NewManager(parses(), menu.NewStore())
	process(t, m, "add hamburger to the menu")
	process(t, m, "main course")

	// course is already set, the reply states the existing one
	got := process(t, m, "the hamburger is a starter")
	if !strings.Contains(got, "already a main course") {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestAskWithEmptyMenu(t *testing.T) {
	m := NewManager(parses(), menu.NewStore())
	if got := process(t, m, "what do you have"); got != replyEmptyMenu {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestAskSpecificCourse(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	got := process(t, m, "what do you have for dessert")
	if got != "For dessert we have cake" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOrderScenario(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))

	if got := process(t, m, "i would like to order a hamburger"); got != "Ok. Do you want anything else?" {
		t.Fatalf("unexpected reply: %q", got)
	}

	// declining closes the order even though courses remain unfilled
	if got := process(t, m, "no"); got != "Ok, your order is complete. Enjoy!" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if m.Over() {
		t.Fatal("a completed order must not end the dialogue")
	}
}

func TestOrderYesKeepsGoing(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	process(t, m, "i would like to order a hamburger")

	if got := process(t, m, "yes"); got != "Ok, please tell me" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := process(t, m, "i would like a coke"); got != "Ok. Do you want anything else?" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOrderTriggerWordsAreNotNo(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	process(t, m, "i would like to order a hamburger")

	// "no" next to an ordering phrase must not close the order
	got := process(t, m, "no i would like a coke")
	if got != "Ok. Do you want anything else?" {
		t.Fatalf("unexpected reply: %q", got)
	}
	got = process(t, m, "my order so far")
	if !strings.Contains(got, "hamburger for main course") || !strings.Contains(got, "coke for drink") {
		t.Fatalf("recap misses the filled slots: %q", got)
	}
}

func TestOrderRecap(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	process(t, m, "i would like to order a hamburger")

	got := process(t, m, "my order so far")
	if !strings.HasPrefix(got, "You ordered: hamburger for main course") {
		t.Fatalf("unexpected recap: %q", got)
	}

	// the recap re-opens the anything-else question
	if got := process(t, m, "no"); got != "Ok, your order is complete. Enjoy!" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestOrderUnknownDish(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	process(t, m, "i would like to order a hamburger")

	got := process(t, m, "i would like a pizza")
	if !strings.Contains(got, "not on the menu") {
		t.Fatalf("unexpected reply: %q", got)
	}

	// the frame stayed open and still waits on the anything-else question
	if got := process(t, m, "no"); got != "Ok, your order is complete. Enjoy!" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestAskWholeMenu(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	got := process(t, m, "tell me about the menu")
	want := "Today we have hamburger for main course; cake for dessert; coke for drink"
	if got != want {
		t.Fatalf("unexpected listing:\nwant %q\ngot  %q", want, got)
	}
}

func TestInterruptionAndResumption(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))

	orderReply := process(t, m, "i would like to order a hamburger")

	// a question interrupts the order, which is resumed verbatim afterwards
	got := process(t, m, "what do you have for dessert")
	want := "For dessert we have cake Back to your order. " + orderReply
	if got != want {
		t.Fatalf("unexpected resumption reply:\nwant %q\ngot  %q", want, got)
	}

	// the resumed order still waits for the yes/no answer
	if got := process(t, m, "no"); got != "Ok, your order is complete. Enjoy!" {
		t.Fatalf("unexpected reply: %q", got)
	}
}

func TestEndFrame(t *testing.T) {
	m := NewManager(parses(), fullMenu(t))
	process(t, m, "i would like to order a hamburger")

	// the bill ends everything, the suspended order is discarded
	if got := process(t, m, "give me the bill"); got != replyGoodbye {
		t.Fatalf("unexpected reply: %q", got)
	}
	if !m.Over() {
		t.Fatal("expected the dialogue to be over")
	}

	// a closed dialogue stays closed
	if got := process(t, m, "i would like a coke"); got != "" {
		t.Fatalf("expected no reply after the end, got %q", got)
	}
}

func TestTranscriptRecordsTurns(t *testing.T) {
	ctx := context.Background()
	repo := transcript.NewMemoryRepository()
	m := NewManager(parses(), menu.NewStore(), WithTranscript(repo, "conv-1"))

	process(t, m, "add hamburger to the menu")

	turns, err := repo.History(ctx, "conv-1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != transcript.RoleUser || turns[0].Content != "add hamburger to the menu" {
		t.Fatalf("unexpected user turn: %+v", turns[0])
	}
	if turns[1].Role != transcript.RoleBot || turns[1].Content != "Ok. What course is it?" {
		t.Fatalf("unexpected bot turn: %+v", turns[1])
	}
}
