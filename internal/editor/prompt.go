package editor

import (
	"errors"

	"github.com/hibiken/kilo/internal/terminal"
)

// ErrPromptCanceled is returned by Prompt when the user presses Escape.
var ErrPromptCanceled = errors.New("user canceled the input prompt")

// PromptObserver is notified after every key press while a prompt is open.
type PromptObserver interface {
	OnKey(query string, k terminal.Key)
}

// Prompt shows the given prompt in the message bar and gets user input
// until the user presses the Enter key to confirm the input or the Escape
// key to cancel it. The prompt must contain one %s verb for the input.
// The optional observer sees the current input and the last key pressed,
// including the key that ends the prompt.
func (e *Editor) Prompt(prompt string, obs PromptObserver) (string, error) {
	var buf []byte
	for {
		e.SetStatusMessage(prompt, buf)
		if err := e.Refresh(); err != nil {
			return "", err
		}

		k, err := e.term.ReadKey()
		if err != nil {
			return "", err
		}
		switch {
		case k == terminal.KeyDelete || k == terminal.KeyBackspace || k == terminal.Ctrl('h'):
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case k == terminal.KeyEscape:
			e.SetStatusMessage("")
			if obs != nil {
				obs.OnKey(string(buf), k)
			}
			return "", ErrPromptCanceled
		case k == terminal.KeyEnter:
			if len(buf) > 0 {
				e.SetStatusMessage("")
				if obs != nil {
					obs.OnKey(string(buf), k)
				}
				return string(buf), nil
			}
		case k >= 32 && k < 127:
			buf = append(buf, byte(k))
		}

		if obs != nil {
			obs.OnKey(string(buf), k)
		}
	}
}
