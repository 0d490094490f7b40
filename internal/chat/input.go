package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

func newInputModel() textarea.Model {
	input := textarea.New()
	input.Placeholder = "message…"
	input.Prompt = "┃ "
	input.CharLimit = 2000
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()
	return input
}

func newSearchInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "search messages"
	input.Prompt = "/ "
	input.CharLimit = 200
	return input
}
