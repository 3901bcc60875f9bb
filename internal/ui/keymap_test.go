package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/tabv/internal/navigator"
)

func TestIsValidKeyMode(t *testing.T) {
	assert.True(t, IsValidKeyMode("vim"))
	assert.True(t, IsValidKeyMode("emacs"))
	assert.False(t, IsValidKeyMode("function"))
	assert.False(t, IsValidKeyMode(""))
}

func TestResolveVim(t *testing.T) {
	km := NewKeyMap(KeyModeVim)

	tests := []struct {
		name    string
		msg     tea.KeyPressMsg
		finding bool
		want    navigator.Intent
		text    string
	}{
		{"j moves down", text("j")[0], false, navigator.NextRow, ""},
		{"down arrow", tea.KeyPressMsg{Code: tea.KeyDown}, false, navigator.NextRow, ""},
		{"k moves up", text("k")[0], false, navigator.PrevRow, ""},
		{"l moves right", text("l")[0], false, navigator.NextCol, ""},
		{"h moves left", text("h")[0], false, navigator.PrevCol, ""},
		{"ctrl+j next sheet", ctrlKey('j'), false, navigator.NextSheet, ""},
		{"ctrl+k previous sheet", ctrlKey('k'), false, navigator.PrevSheet, ""},
		{"J next file", text("J")[0], false, navigator.NextFile, ""},
		{"K previous file", text("K")[0], false, navigator.PrevFile, ""},
		{"; opens finder", text(";")[0], false, navigator.OpenFinder, ""},
		{"/ opens finder", text("/")[0], false, navigator.OpenFinder, ""},
		{"y copies", text("y")[0], false, navigator.CopyCell, ""},
		{"q quits", text("q")[0], false, navigator.Quit, ""},
		{"esc quits", escKey, false, navigator.Quit, ""},
		{"ctrl+c quits", ctrlKey('c'), false, navigator.Quit, ""},
		{"unbound key", text("z")[0], false, navigator.None, ""},

		{"ctrl+j next result", ctrlKey('j'), true, navigator.FinderNextResult, ""},
		{"ctrl+n next result", ctrlKey('n'), true, navigator.FinderNextResult, ""},
		{"ctrl+k previous result", ctrlKey('k'), true, navigator.FinderPrevResult, ""},
		{"up previous result", tea.KeyPressMsg{Code: tea.KeyUp}, true, navigator.FinderPrevResult, ""},
		{"enter confirms", enterKey, true, navigator.ConfirmFinder, ""},
		{"esc cancels", escKey, true, navigator.CancelFinder, ""},
		{"backspace deletes", bsKey, true, navigator.FinderDeleteBackward, ""},
		{"j is text", text("j")[0], true, navigator.None, "j"},
		{"q is text", text("q")[0], true, navigator.None, "q"},
		{"ctrl+c still quits", ctrlKey('c'), true, navigator.Quit, ""},
		{"unbound ctrl is dropped", ctrlKey('z'), true, navigator.None, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, txt := km.Resolve(tt.msg, tt.finding)
			assert.Equal(t, tt.want, intent, intent.String())
			assert.Equal(t, tt.text, txt)
		})
	}
}

func TestResolveEmacs(t *testing.T) {
	km := NewKeyMap(KeyModeEmacs)

	tests := []struct {
		msg     tea.KeyPressMsg
		finding bool
		want    navigator.Intent
	}{
		{ctrlKey('n'), false, navigator.NextRow},
		{ctrlKey('p'), false, navigator.PrevRow},
		{ctrlKey('f'), false, navigator.NextCol},
		{ctrlKey('b'), false, navigator.PrevCol},
		{tea.KeyPressMsg{Code: 'n', Mod: tea.ModAlt}, false, navigator.NextSheet},
		{tea.KeyPressMsg{Code: 'p', Mod: tea.ModAlt}, false, navigator.PrevSheet},
		{ctrlKey('s'), false, navigator.OpenFinder},
		{ctrlKey('q'), false, navigator.Quit},
		{text("j")[0], false, navigator.None},
		{ctrlKey('g'), true, navigator.CancelFinder},
		{ctrlKey('n'), true, navigator.FinderNextResult},
		{enterKey, true, navigator.ConfirmFinder},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			intent, _ := km.Resolve(tt.msg, tt.finding)
			assert.Equal(t, tt.want, intent)
		})
	}
}

func TestUnknownKeyModeFallsBackToVim(t *testing.T) {
	km := NewKeyMap("")
	assert.Equal(t, KeyModeVim, km.Mode)
	intent, _ := km.Resolve(text("j")[0], false)
	assert.Equal(t, navigator.NextRow, intent)
}

func TestShortHelpSkipsReverseBindings(t *testing.T) {
	km := NewKeyMap(KeyModeVim)
	var keys []string
	for _, b := range km.ShortHelp(false) {
		keys = append(keys, b.Help().Key)
	}
	assert.Equal(t, []string{"j/k", "h/l", "C-j/C-k", "J/K", ";", "y", "q"}, keys)
	assert.Len(t, km.ShortHelp(true), 5)
}
