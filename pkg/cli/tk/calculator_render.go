package tk

import (
	"src.kalk.dev/pkg/calc"
	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/ui"
)

// View model, calculated from State and used for rendering.
type view struct {
	// Text on the display line.
	display string
	// Pending-operation indicator, like "12 +"; empty when nothing is
	// pending.
	pending string
	// Keypad key to highlight; empty when nothing is pending.
	activeKey string
}

var (
	stylingForDisplay   = ui.Bold
	stylingForPending   = ui.Dim
	stylingForActiveKey = ui.Inverse
)

// The keypad, in display order. The glyphs match calc.Op.String so the key of
// the pending operator can be found by comparing strings.
var keypadRows = [][]string{
	{"7", "8", "9", calc.Divide.String()},
	{"4", "5", "6", calc.Multiply.String()},
	{"1", "2", "3", calc.Subtract.String()},
	{"C", "0", ".", calc.Add.String()},
	{calc.Equals.String()},
}

func getView(w *calculator) *view {
	s := w.CopyState()
	v := &view{display: s.Display}
	if s.Pending != nil {
		v.pending = s.Pending.String()
		v.activeKey = s.Pending.Op.String()
	}
	return v
}

// Render renders the display, the pending-operation indicator and the keypad.
func (w *calculator) Render(width, height int) *term.Buffer {
	b := w.render(width)
	truncateToHeight(b, height)
	return b
}

func (w *calculator) MaxHeight(width, height int) int {
	return len(w.render(width).Lines)
}

func (w *calculator) render(width int) *term.Buffer {
	bb := term.NewBufferBuilder(width)
	renderView(getView(w), bb)
	return bb.Buffer()
}

func renderView(v *view, bb *term.BufferBuilder) {
	bb.Write(v.display, stylingForDisplay).SetDotHere()

	// The indicator line is always present, so the widget height does not
	// jump as operations are armed and resolved.
	bb.Newline()
	if v.pending != "" {
		bb.Write(v.pending, stylingForPending)
	}

	for _, row := range keypadRows {
		bb.Newline()
		for i, key := range row {
			if i > 0 {
				bb.Write(" ")
			}
			if key == v.activeKey {
				bb.Write(key, stylingForActiveKey)
			} else {
				bb.Write(key)
			}
		}
	}
}

// truncateToHeight crops the buffer to maxHeight lines, keeping the line with
// the dot visible.
func truncateToHeight(b *term.Buffer, maxHeight int) {
	switch {
	case len(b.Lines) <= maxHeight:
		// We can show all lines; do nothing.
	case b.Dot.Line < maxHeight:
		// We can show all lines before the cursor, and as many lines after
		// the cursor as we can, adding up to maxHeight.
		b.TrimToLines(0, maxHeight)
	default:
		// We can show maxHeight lines before and including the cursor line.
		b.TrimToLines(b.Dot.Line-maxHeight+1, b.Dot.Line+1)
	}
}
