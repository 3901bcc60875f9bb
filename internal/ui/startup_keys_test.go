package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestParseTokenSegments(t *testing.T) {
	got := parseTokenSegments("<ctrl+j>abc<enter>x<open")
	assert.Equal(t, []tokenSegment{
		{text: "<ctrl+j>", isKey: true},
		{text: "abc"},
		{text: "<enter>", isKey: true},
		{text: "x"},
		{text: "<open"},
	}, got)
}

func TestKeyMsgFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"enter", "enter"},
		{"CR", "enter"},
		{"esc", "esc"},
		{"bs", "backspace"},
		{"down", "down"},
		{"ctrl+j", "ctrl+j"},
		{"C-k", "ctrl+k"},
		{"c-c", "ctrl+c"},
		{"alt+n", "alt+n"},
		{"M-p", "alt+p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := keyMsgFromName(tt.name)
			if !ok {
				t.Fatalf("keyMsgFromName(%q) not recognised", tt.name)
			}
			assert.Equal(t, tt.want, msg.String())
		})
	}

	for _, name := range []string{"ctrl+", "bogus", "alt+xy"} {
		if _, ok := keyMsgFromName(name); ok {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestKeyMsgsFromToken(t *testing.T) {
	msgs := keyMsgsFromToken(`\<enter>`)
	assert.Len(t, msgs, 7, "backslash tokens are literal")

	msgs = keyMsgsFromToken("<bogus>")
	assert.Len(t, msgs, 7, "unknown keys are typed")

	msgs = keyMsgsFromToken("a<space>")
	assert.Equal(t, []tea.KeyPressMsg{{Code: 'a', Text: "a"}, {Code: ' ', Text: " "}}, msgs)
}

func TestApplyStartupKeysStopsAtQuit(t *testing.T) {
	m := testModel(t, KeyModeVim)
	ApplyStartupKeys(m, []string{"q", "J"})
	assert.True(t, m.Quitting())
	assert.Equal(t, 0, m.Controller().View().File)

	ApplyStartupKeys(nil, []string{"j"})
}
