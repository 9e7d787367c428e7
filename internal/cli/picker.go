package cli

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrNothingToPick is returned when a picker has no items.
var ErrNothingToPick = errors.New("nothing to choose from")

// Pick shows an arrow-key menu of items on the terminal and returns the
// chosen one. Ctrl-C returns promptui.ErrInterrupt.
func Pick(label string, items []string) (string, error) {
	if len(items) == 0 {
		return "", ErrNothingToPick
	}
	p := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	_, choice, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return choice, nil
}

// Ask prompts for a line of text, offering def as the default.
func Ask(label, def string) (string, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: def,
	}
	answer, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("%s: %w", label, err)
	}
	return answer, nil
}
