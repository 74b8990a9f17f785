package tk

import (
	"reflect"
	"testing"

	"src.kalk.dev/pkg/cli/term"
	"src.kalk.dev/pkg/ui"
)

var layoutRenderTests = []struct {
	name     string
	renderer Renderer
	width    int
	height   int
	wantBuf  *term.BufferBuilder
}{
	{
		"empty widget",
		Empty{},
		10, 24,
		bb(10),
	},
	{
		"Label showing all",
		Label{ui.T("label")},
		10, 24,
		bb(10).Write("label"),
	},
	{
		"Label cropping",
		Label{ui.T("label")},
		4, 1,
		bb(4).Write("labe"),
	},
}

func TestLayout_Render(t *testing.T) {
	for _, test := range layoutRenderTests {
		t.Run(test.name, func(t *testing.T) {
			buf := test.renderer.Render(test.width, test.height)
			wantBuf := test.wantBuf.Buffer()
			if !reflect.DeepEqual(buf, wantBuf) {
				t.Errorf("got buf %v, want %v", buf, wantBuf)
			}
		})
	}
}

var nopHandlers = []Handler{
	Empty{}, Label{ui.T("label")},
}

func TestLayout_Handle(t *testing.T) {
	for _, handler := range nopHandlers {
		handled := handler.Handle(term.K('a'))
		if handled {
			t.Errorf("%v handles event when it shouldn't", handler)
		}
	}
}
