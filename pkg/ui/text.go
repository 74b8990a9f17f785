// Package ui provides types that describe the visual aspect of terminal UIs:
// input keys, colors, styles and styled text.
package ui

import "strings"

// Text is a list of styled Segments.
type Text []*Segment

// T constructs a new Text with the given content and Stylings applied.
func T(s string, ts ...Styling) Text {
	return StyleText(Text{&Segment{Text: s}}, ts...)
}

// Concat concatenates several Texts into one.
func Concat(texts ...Text) Text {
	var ret Text
	for _, text := range texts {
		ret = append(ret, text...)
	}
	return ret
}

// String returns the string content of the Text, without any styling.
func (t Text) String() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

// VTString renders the Text using VT-style escape sequences.
func (t Text) VTString() string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString(seg.VTString())
	}
	return sb.String()
}
