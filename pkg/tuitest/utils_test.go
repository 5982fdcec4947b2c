package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nplain  \n\n"
	assert.Equal(t, "bold\nplain", StripANSI(in))
}

func TestKeyStrings(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{KeyPress('a'), "a"},
		{KeyPress(' '), " "},
		{KeyEnter(), "enter"},
		{KeyEsc(), "esc"},
		{KeyUp(), "up"},
		{KeyDown(), "down"},
		{KeyCtrlU(), "ctrl+u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.msg.String())
	}
}

func TestType(t *testing.T) {
	msgs := Type("hi")
	assert.Equal(t, []tea.Msg{KeyPress('h'), KeyPress('i')}, msgs)
}
