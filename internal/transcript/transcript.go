package transcript

import (
	"context"
	"time"
)

// Role tags a turn with its author.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Turn is one utterance of the dialogue, user or bot side.
type Turn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Repository stores the turns of a conversation keyed by conversation ID.
// Recording is best effort: callers log failures and keep the dialogue
// going.
type Repository interface {
	// Append adds a turn to the conversation history.
	Append(ctx context.Context, conversationID string, turn Turn) error

	// History retrieves all recorded turns of a conversation in order.
	History(ctx context.Context, conversationID string) ([]Turn, error)

	// Clear removes all recorded turns of a conversation.
	Clear(ctx context.Context, conversationID string) error

	// Count returns the number of recorded turns.
	Count(ctx context.Context, conversationID string) (int, error)
}
