package speech

import (
	"os/exec"
	"strconv"

	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
)

// Speaker voices a sentence. Speaking is fire and forget; a broken TTS
// surface must never stall the dialogue.
type Speaker interface {
	Speak(sentence string)
}

// SpeakerConfig selects and tunes the OS text-to-speech command.
type SpeakerConfig struct {
	Enabled bool `envconfig:"SPEAKER_ENABLED" default:"false"`
	Spd     bool `envconfig:"SPEAKER_SPD" default:"false"`
	Rate    int  `envconfig:"SPEAKER_RATE" default:"0"`
	Pitch   int  `envconfig:"SPEAKER_PITCH" default:"0"`
	Volume  int  `envconfig:"SPEAKER_VOLUME" default:"0"`
}

// Command speaks through the OS TTS command: spd-say where configured,
// say otherwise.
type Command struct {
	cfg SpeakerConfig
}

func NewCommand(cfg SpeakerConfig) *Command {
	return &Command{cfg: cfg}
}

func (c *Command) Speak(sentence string) {
	var cmd *exec.Cmd
	if c.cfg.Spd {
		cmd = exec.Command("spd-say",
			"--rate", strconv.Itoa(c.cfg.Rate),
			"--pitch", strconv.Itoa(c.cfg.Pitch),
			"--volume", strconv.Itoa(c.cfg.Volume),
			sentence)
	} else {
		cmd = exec.Command("say", sentence)
	}
	if err := cmd.Run(); err != nil {
		logx.Warn().Err(err).Str("component", "speaker").Msg("tts command failed")
	}
}

// Null swallows every sentence, for silent runs and tests.
type Null struct{}

func (Null) Speak(string) {}

// FromConfig picks the speaker implementation for the configuration.
func FromConfig(cfg SpeakerConfig) Speaker {
	if cfg.Enabled {
		return NewCommand(cfg)
	}
	return Null{}
}

var (
	_ Speaker = (*Command)(nil)
	_ Speaker = Null{}
)
