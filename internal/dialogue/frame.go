package dialogue

import (
	"github.com/tavolo-poc/waiterbot/internal/menu"
)

// Kind identifies the frame variant, the intent under negotiation.
type Kind int

const (
	KindAskInfo Kind = iota
	KindAddInfo
	KindOrder
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindAskInfo:
		return "ask_info"
	case KindAddInfo:
		return "add_info"
	case KindOrder:
		return "order"
	case KindEnd:
		return "end"
	}
	return "unknown"
}

// Answer is the recorded yes/no reading of a user turn. It is reset before
// every turn and only set while a frame waits for confirmation.
type Answer int

const (
	AnswerUnclear Answer = iota
	AnswerYes
	AnswerNo
)

// frameState is the bookkeeping every frame variant carries: the reply to
// replay when the frame is resumed after an interruption, and the flags
// governing how the next turn is read.
type frameState struct {
	lastReply    string
	waitingOpen  bool
	waitingYesNo bool
	answer       Answer
}

func (s *frameState) state() *frameState { return s }

// Frame is one user intent under negotiation. The variant fixes the slot
// set at construction; slot values only ever move from empty to set.
type Frame interface {
	Kind() Kind
	state() *frameState
}

// AskInfoFrame answers questions about the menu or a single course. It
// always closes after one reply.
type AskInfoFrame struct {
	frameState
	Subject string // "menu" or "course"
	Object  string // the specific course asked about, when Subject is "course"
}

func NewAskInfoFrame() *AskInfoFrame { return &AskInfoFrame{} }

func (f *AskInfoFrame) Kind() Kind { return KindAskInfo }

// AddInfoFrame adds an entry to the menu or records the course of one.
type AddInfoFrame struct {
	frameState
	Subject string // "menu" or "course"
	Object  string // entry name, remembered across the open-answer turn
	Info    string // course of the entry
}

func NewAddInfoFrame() *AddInfoFrame { return &AddInfoFrame{} }

func (f *AddInfoFrame) Kind() Kind { return KindAddInfo }

// OrderFrame accumulates one dish per course until the order is complete
// or the user declines to add more.
type OrderFrame struct {
	frameState
	courses    map[menu.Course]string
	askedRecap bool
}

func NewOrderFrame() *OrderFrame {
	return &OrderFrame{courses: make(map[menu.Course]string)}
}

func (f *OrderFrame) Kind() Kind { return KindOrder }

// fill records a dish for its course. A slot, once filled, is never
// overwritten; re-mentioning a dish of the same course is a no-op.
func (f *OrderFrame) fill(c menu.Course, name string) bool {
	if _, ok := f.courses[c]; ok {
		return false
	}
	f.courses[c] = name
	return true
}

func (f *OrderFrame) anyFilled() bool {
	return len(f.courses) > 0
}

func (f *OrderFrame) complete() bool {
	return len(f.courses) == len(menu.Courses())
}

// orderSlot is one filled course of an order.
type orderSlot struct {
	Course menu.Course
	Name   string
}

// filled returns course/dish pairs in the fixed course order.
func (f *OrderFrame) filled() []orderSlot {
	var out []orderSlot
	for _, c := range menu.Courses() {
		if name, ok := f.courses[c]; ok {
			out = append(out, orderSlot{Course: c, Name: name})
		}
	}
	return out
}

// EndFrame terminates the dialogue. It carries no slots.
type EndFrame struct {
	frameState
}

func NewEndFrame() *EndFrame { return &EndFrame{} }

func (f *EndFrame) Kind() Kind { return KindEnd }
