package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders a prophecy as markdown for
// terminal display, adapting to the terminal background.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return nil, err
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}
