package speech

import (
	"bufio"
	"context"
	"io"
	"strings"

	errx "github.com/tavolo-poc/waiterbot/internal/core/error"
)

// Listener produces the next user utterance. Errors follow the ASR
// taxonomy: ErrUnintelligible is worth a retry, ErrServiceUnavailable ends
// the session.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}

// Keyboard reads utterances line by line, the text equivalent of the
// microphone surface.
type Keyboard struct {
	scanner *bufio.Scanner
}

func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{scanner: bufio.NewScanner(r)}
}

func (k *Keyboard) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errx.ErrServiceUnavailable
	}
	if !k.scanner.Scan() {
		// closed stdin is the keyboard going away
		return "", errx.ErrServiceUnavailable
	}
	sentence := strings.ToLower(strings.TrimSpace(k.scanner.Text()))
	if sentence == "" {
		return "", errx.ErrUnintelligible
	}
	return sentence, nil
}

var _ Listener = (*Keyboard)(nil)
