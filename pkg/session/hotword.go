package session

import "strings"

// Command is a side-channel action requested by a spoken hotword.
type Command int

const (
	// CommandCaptureImage opens the camera capture workflow.
	CommandCaptureImage Command = iota
	// CommandCaptureAudio opens the audio recording workflow.
	CommandCaptureAudio
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandCaptureImage:
		return "capture-image"
	case CommandCaptureAudio:
		return "capture-audio"
	default:
		return "unknown"
	}
}

// Match is a hotword hit in a finalized user utterance. It is derived
// per fragment and never stored.
type Match struct {
	// Command is the requested action.
	Command Command
	// Phrase is the trigger phrase that matched.
	Phrase string
}

// Default trigger phrase sets. Declaration order is match priority
// within a set, and image triggers are always checked before audio
// triggers.
var (
	DefaultImageTriggers = []string{"撮影して", "写真撮って", "カメラ"}
	DefaultAudioTriggers = []string{"録音して", "録音開始", "録音停止"}
)

// Dispatcher scans finalized user utterances for hotword phrases.
//
// Matching is lower-cased containment; the first matching phrase wins
// and image triggers take precedence over audio triggers. Match has no
// side effects, so a matched utterance still reaches the transcript log
// unchanged.
type Dispatcher struct {
	imageTriggers []string
	audioTriggers []string
}

// NewDispatcher creates a Dispatcher with the default phrase sets.
func NewDispatcher() *Dispatcher {
	return NewDispatcherWithTriggers(DefaultImageTriggers, DefaultAudioTriggers)
}

// NewDispatcherWithTriggers creates a Dispatcher with custom phrase
// sets. Phrases are matched case-insensitively.
func NewDispatcherWithTriggers(image, audio []string) *Dispatcher {
	lower := func(in []string) []string {
		out := make([]string, len(in))
		for i, p := range in {
			out[i] = strings.ToLower(p)
		}
		return out
	}
	return &Dispatcher{
		imageTriggers: lower(image),
		audioTriggers: lower(audio),
	}
}

// Match returns the hotword match for the given utterance text, if any.
func (d *Dispatcher) Match(text string) (Match, bool) {
	t := strings.ToLower(text)
	for _, p := range d.imageTriggers {
		if strings.Contains(t, p) {
			return Match{Command: CommandCaptureImage, Phrase: p}, true
		}
	}
	for _, p := range d.audioTriggers {
		if strings.Contains(t, p) {
			return Match{Command: CommandCaptureAudio, Phrase: p}, true
		}
	}
	return Match{}, false
}
