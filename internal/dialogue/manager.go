package dialogue

import (
	"context"
	"time"

	"github.com/tavolo-poc/waiterbot/internal/menu"
	"github.com/tavolo-poc/waiterbot/internal/nlp"
	"github.com/tavolo-poc/waiterbot/internal/transcript"
	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
)

// Reply sentences shared across handlers.
const (
	replyNotUnderstood = "Sorry, I did not understand"
	replyEmptyMenu     = "There is nothing on the menu today"
	replyOk            = "Ok"
	replyGoodbye       = "Ok, I will get you the bill. Goodbye!"
)

// Manager owns the dialogue state of one conversation: the active frame,
// the stack of frames suspended by a topic change, and the menu the
// handlers consult and mutate. It is strictly turn based and not safe for
// concurrent use.
type Manager struct {
	parser nlp.Parser
	menu   *menu.Store

	transcript     transcript.Repository
	conversationID string

	active    Frame
	suspended []Frame // front = most recently suspended
	over      bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithTranscript records every turn under the given conversation ID.
func WithTranscript(repo transcript.Repository, conversationID string) Option {
	return func(m *Manager) {
		m.transcript = repo
		m.conversationID = conversationID
	}
}

func NewManager(parser nlp.Parser, store *menu.Store, opts ...Option) *Manager {
	m := &Manager{parser: parser, menu: store}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Menu exposes the store so the session loop can persist it at the end.
func (m *Manager) Menu() *menu.Store {
	return m.menu
}

// Over reports whether an End frame terminated the dialogue.
func (m *Manager) Over() bool {
	return m.over
}

// Process runs one full turn: parse, classify, dispatch to the frame
// handler, and produce the reply. Parse failures surface as errors; every
// well-formed parse yields a reply.
func (m *Manager) Process(ctx context.Context, utterance string) (string, error) {
	if m.over {
		return "", nil
	}

	tree, err := m.parser.Parse(ctx, utterance)
	if err != nil {
		return "", err
	}

	m.record(ctx, transcript.RoleUser, utterance)
	reply := m.advance(tree)
	m.record(ctx, transcript.RoleBot, reply)
	return reply, nil
}

// advance is the frame state machine transition for one parsed utterance.
func (m *Manager) advance(tree *nlp.Tree) string {
	candidate := Classify(tree)

	switch {
	case m.active == nil:
		m.active = candidate
	case candidate != nil && candidate.Kind() != m.active.Kind():
		// Topic change: suspend the current frame, most recent in front.
		// Same-variant and unclassified utterances continue the active
		// frame instead.
		logx.Debug().
			Str("component", "dialogue").
			Str("active", m.active.Kind().String()).
			Str("interrupting", candidate.Kind().String()).
			Msg("frame interrupted")
		m.suspended = append([]Frame{m.active}, m.suspended...)
		m.active = candidate
	}

	if m.active == nil {
		return replyNotUnderstood
	}

	// the yes/no reading is re-evaluated every turn
	m.active.state().answer = AnswerUnclear

	var reply string
	var next Frame
	switch f := m.active.(type) {
	case *EndFrame:
		reply, next = m.handleEnd(f)
	case *AskInfoFrame:
		reply, next = m.handleAskInfo(f, tree)
	case *AddInfoFrame:
		reply, next = m.handleAddInfo(f, tree)
	case *OrderFrame:
		reply, next = m.handleOrder(f, tree)
	}

	if m.over {
		// no resumption after the farewell
		m.active = nil
		m.suspended = nil
		return reply
	}

	m.active = next
	if m.active == nil && len(m.suspended) > 0 {
		resumed := m.suspended[0]
		m.suspended = m.suspended[1:]
		m.active = resumed
		reply += " " + resumePrefix(resumed.Kind()) + " " + resumed.state().lastReply
	}

	if m.active != nil {
		m.active.state().lastReply = reply
	}
	return reply
}

func resumePrefix(k Kind) string {
	switch k {
	case KindAddInfo:
		return "Back to your statement."
	case KindAskInfo:
		return "Back to your question."
	default:
		return "Back to your order."
	}
}

// handleEnd replies with the farewell and terminates the dialogue. Any
// suspended topic is discarded.
func (m *Manager) handleEnd(*EndFrame) (string, Frame) {
	m.over = true
	return replyGoodbye, nil
}

func (m *Manager) record(ctx context.Context, role transcript.Role, content string) {
	if m.transcript == nil || content == "" {
		return
	}
	turn := transcript.Turn{Role: role, Content: content, At: time.Now().UTC()}
	if err := m.transcript.Append(ctx, m.conversationID, turn); err != nil {
		logx.Warn().Err(err).Str("component", "dialogue").Str("conversationID", m.conversationID).Msg("failed to record turn")
	}
}
