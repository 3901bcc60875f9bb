package ui

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds key tokens to m as if they were typed. A token is a
// mix of <...> keys (such as <ctrl+j>, <C-j>, <enter>, <esc>) and literal
// text; a leading backslash makes the whole token literal. Processing stops
// once a key quits the model.
func ApplyStartupKeys(m *Model, keys []string) {
	if m == nil {
		return
	}
	for _, raw := range keys {
		for _, msg := range keyMsgsFromToken(raw) {
			if m.quitting {
				return
			}
			m.Update(msg)
		}
	}
}

// keyMsgsFromToken expands one token into key presses. Unknown <...> names
// are typed literally.
func keyMsgsFromToken(token string) []tea.KeyPressMsg {
	if token == "" {
		return nil
	}
	if strings.HasPrefix(token, `\`) {
		return textMsgs(token[1:])
	}
	var msgs []tea.KeyPressMsg
	for _, seg := range parseTokenSegments(token) {
		if seg.isKey {
			if msg, ok := keyMsgFromName(seg.text[1 : len(seg.text)-1]); ok {
				msgs = append(msgs, msg)
				continue
			}
		}
		msgs = append(msgs, textMsgs(seg.text)...)
	}
	return msgs
}

func textMsgs(text string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// tokenSegment is either a <...> key or a run of literal text.
type tokenSegment struct {
	text  string
	isKey bool
}

// parseTokenSegments splits "<ctrl+j>abc<enter>" into key and text segments.
// An unclosed "<" is literal text.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for remaining != "" {
		start := strings.Index(remaining, "<")
		if start == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if start > 0 {
			segments = append(segments, tokenSegment{text: remaining[:start]})
		}
		end := strings.Index(remaining[start:], ">")
		if end == -1 {
			segments = append(segments, tokenSegment{text: remaining[start:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[start : start+end+1], isKey: true})
		remaining = remaining[start+end+1:]
	}
	return segments
}

var namedKeys = map[string]rune{
	"esc":       tea.KeyEscape,
	"escape":    tea.KeyEscape,
	"cr":        tea.KeyEnter,
	"enter":     tea.KeyEnter,
	"return":    tea.KeyEnter,
	"tab":       tea.KeyTab,
	"bs":        tea.KeyBackspace,
	"backspace": tea.KeyBackspace,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
}

// keyMsgFromName parses the inside of a <...> token: a named key, "space",
// or one character with ctrl/alt modifiers ("ctrl+j", "C-j", "alt+N", "M-n").
func keyMsgFromName(name string) (tea.KeyPressMsg, bool) {
	lower := strings.ToLower(name)
	if code, ok := namedKeys[lower]; ok {
		return tea.KeyPressMsg{Code: code}, true
	}
	if lower == "space" {
		return tea.KeyPressMsg{Code: ' ', Text: " "}, true
	}

	var mod tea.KeyMod
	rest := name
	for {
		l := strings.ToLower(rest)
		switch {
		case strings.HasPrefix(l, "ctrl+"):
			mod |= tea.ModCtrl
			rest = rest[len("ctrl+"):]
		case strings.HasPrefix(l, "c-"):
			mod |= tea.ModCtrl
			rest = rest[len("c-"):]
		case strings.HasPrefix(l, "alt+"):
			mod |= tea.ModAlt
			rest = rest[len("alt+"):]
		case strings.HasPrefix(l, "m-"):
			mod |= tea.ModAlt
			rest = rest[len("m-"):]
		default:
			if mod == 0 || utf8.RuneCountInString(rest) != 1 {
				return tea.KeyPressMsg{}, false
			}
			r, _ := utf8.DecodeRuneInString(rest)
			if mod.Contains(tea.ModCtrl) {
				// Terminals cannot tell ctrl+J from ctrl+j.
				r = []rune(strings.ToLower(string(r)))[0]
			}
			return tea.KeyPressMsg{Code: r, Mod: mod}, true
		}
	}
}
