package bot

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	errx "github.com/tavolo-poc/waiterbot/internal/core/error"
	"github.com/tavolo-poc/waiterbot/internal/dialogue"
	"github.com/tavolo-poc/waiterbot/internal/speech"
	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
)

// Bot runs one waiter session: it listens, hands the utterance to the
// dialogue manager, then prints and speaks the reply.
type Bot struct {
	name     string
	listener speech.Listener
	speaker  speech.Speaker
	manager  *dialogue.Manager
	menuDir  string
	out      io.Writer

	botPrefix  func(a ...interface{}) string
	userPrefix func(a ...interface{}) string
}

func New(name string, listener speech.Listener, speaker speech.Speaker, manager *dialogue.Manager, menuDir string, out io.Writer) *Bot {
	return &Bot{
		name:       name,
		listener:   listener,
		speaker:    speaker,
		manager:    manager,
		menuDir:    menuDir,
		out:        out,
		botPrefix:  color.New(color.FgRed).SprintFunc(),
		userPrefix: color.New(color.FgGreen).SprintFunc(),
	}
}

// Run loops until the dialogue ends or the listener goes away. The menu is
// persisted once the customer asks for the bill.
func (b *Bot) Run(ctx context.Context) error {
	b.say(fmt.Sprintf("Hello! I am %s, your waiter for today", b.name))

	for {
		sentence, err := b.listener.Listen(ctx)
		if err != nil {
			if errors.Is(err, errx.ErrUnintelligible) {
				b.say("Sorry, I did not get that")
				continue
			}
			// the ASR surface is gone, nothing left to do
			b.say("I cannot hear you anymore. Goodbye!")
			return err
		}

		fmt.Fprintf(b.out, "%s %s\n", b.userPrefix("User:"), sentence)

		reply, err := b.manager.Process(ctx, sentence)
		if err != nil {
			logx.Error().Err(err).Str("component", "bot").Msg("turn failed")
			b.say("Sorry, I did not understand")
			continue
		}
		b.say(reply)

		if b.manager.Over() {
			if _, err := b.manager.Menu().Save(b.menuDir); err != nil {
				logx.Error().Err(err).Str("component", "bot").Msg("failed to save menu")
			}
			return nil
		}
	}
}

func (b *Bot) say(sentence string) {
	fmt.Fprintf(b.out, "%s %s\n", b.botPrefix(b.name+":"), sentence)
	b.speaker.Speak(sentence)
}
