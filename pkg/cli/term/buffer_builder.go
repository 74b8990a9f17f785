package term

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"src.kalk.dev/pkg/ui"
)

// BufferBuilder supports building of a Buffer incrementally. The zero value
// is not usable; always create one with NewBufferBuilder.
type BufferBuilder struct {
	Width int
	// Column of the next write.
	Col   int
	Lines [][]Cell
	Dot   Pos
}

// NewBufferBuilder makes a new BufferBuilder with the given width.
func NewBufferBuilder(width int) *BufferBuilder {
	return &BufferBuilder{Width: width, Lines: [][]Cell{make([]Cell, 0, width)}}
}

// Cursor returns the current position of the cursor.
func (bb *BufferBuilder) Cursor() Pos {
	return Pos{len(bb.Lines) - 1, bb.Col}
}

// Buffer returns the Buffer built so far.
func (bb *BufferBuilder) Buffer() *Buffer {
	return &Buffer{bb.Width, bb.Lines, bb.Dot}
}

// SetDotHere sets the dot to the current cursor position and returns bb.
func (bb *BufferBuilder) SetDotHere() *BufferBuilder {
	bb.Dot = bb.Cursor()
	return bb
}

func (bb *BufferBuilder) appendLine() {
	bb.Lines = append(bb.Lines, make([]Cell, 0, bb.Width))
	bb.Col = 0
}

func (bb *BufferBuilder) appendCell(c Cell) {
	n := len(bb.Lines)
	bb.Lines[n-1] = append(bb.Lines[n-1], c)
	bb.Col += runewidth.StringWidth(c.Text)
}

// Newline starts a new line and returns bb.
func (bb *BufferBuilder) Newline() *BufferBuilder {
	bb.appendLine()
	return bb
}

// WriteRuneSGR writes a single rune with the given SGR style, wrapping to the
// next line when the current line is full. Control characters are written in
// caret notation with inverse video.
func (bb *BufferBuilder) WriteRuneSGR(r rune, style string) *BufferBuilder {
	if r == '\n' {
		bb.appendLine()
		return bb
	}
	c := Cell{string(r), style}
	if r < 0x20 || r == 0x7f {
		if style == "" {
			style = "7"
		} else {
			style += ";7"
		}
		c = Cell{"^" + string(r^0x40), style}
	}
	if bb.Col+runewidth.StringWidth(c.Text) > bb.Width {
		bb.appendLine()
	}
	bb.appendCell(c)
	return bb
}

// WriteStringSGR writes a string with the given SGR style and returns bb.
func (bb *BufferBuilder) WriteStringSGR(text, style string) *BufferBuilder {
	for _, r := range text {
		bb.WriteRuneSGR(r, style)
	}
	return bb
}

// Write writes text with the given Stylings applied, and returns bb.
func (bb *BufferBuilder) Write(text string, ts ...ui.Styling) *BufferBuilder {
	return bb.WriteStringSGR(text, ui.ApplyStyling(ui.Style{}, ts...).SGR())
}

// WriteSpaces writes w spaces with the given Stylings applied, and returns
// bb.
func (bb *BufferBuilder) WriteSpaces(w int, ts ...ui.Styling) *BufferBuilder {
	return bb.Write(strings.Repeat(" ", w), ts...)
}

// WriteStyled writes a styled Text and returns bb.
func (bb *BufferBuilder) WriteStyled(t ui.Text) *BufferBuilder {
	for _, seg := range t {
		bb.WriteStringSGR(seg.Text, seg.Style.SGR())
	}
	return bb
}
