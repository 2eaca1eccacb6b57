package render

import (
	"testing"

	"github.com/inkpress/inkpress/pkg/element"
)

const pageH = 792.0

func TestFlipYEndpoints(t *testing.T) {
	top := FlipY(element.NewText(element.Attrs{"x": 0.0, "y": 0.0, "font": "Arial", "size": 12.0}, "t"), pageH)
	if y, _ := top.Attrs.Number("y"); y != 792 {
		t.Errorf("y=0 flips to %v, want 792", y)
	}
	bottom := FlipY(element.NewText(element.Attrs{"x": 0.0, "y": 792.0, "font": "Arial", "size": 12.0}, "t"), pageH)
	if y, _ := bottom.Attrs.Number("y"); y != 0 {
		t.Errorf("y=792 flips to %v, want 0", y)
	}
}

func TestFlipYRect(t *testing.T) {
	// y was the top edge; the flipped y is the bottom edge in PDF space.
	out := FlipY(element.New(element.TagRect, element.Attrs{
		"x": 10.0, "y": 100.0, "width": 50.0, "height": 30.0,
	}), pageH)
	if y, _ := out.Attrs.Number("y"); y != (pageH-100)-30 {
		t.Errorf("rect y = %v, want %v", y, (pageH-100)-30)
	}
	// Other attributes untouched.
	if x, _ := out.Attrs.Number("x"); x != 10 {
		t.Errorf("rect x = %v, want 10", x)
	}
}

func TestFlipYCircleAndLine(t *testing.T) {
	c := FlipY(element.New(element.TagCircle, element.Attrs{"cx": 5.0, "cy": 100.0, "r": 10.0}), pageH)
	if cy, _ := c.Attrs.Number("cy"); cy != 692 {
		t.Errorf("cy = %v, want 692", cy)
	}

	l := FlipY(element.New(element.TagLine, element.Attrs{
		"x1": 0.0, "y1": 10.0, "x2": 5.0, "y2": 20.0,
	}), pageH)
	if y1, _ := l.Attrs.Number("y1"); y1 != 782 {
		t.Errorf("y1 = %v, want 782", y1)
	}
	if y2, _ := l.Attrs.Number("y2"); y2 != 772 {
		t.Errorf("y2 = %v, want 772", y2)
	}
}

func TestFlipYPathUntouched(t *testing.T) {
	in := element.New(element.TagPath, element.Attrs{"d": "M 0 0 L 10 10"})
	out := FlipY(in, pageH)
	if d, _ := out.Attrs.String("d"); d != "M 0 0 L 10 10" {
		t.Errorf("path d changed: %q", d)
	}
}

func TestFlipYGroup(t *testing.T) {
	in := element.New(element.TagGroup,
		element.Attrs{element.AttrTransforms: []element.Transform{
			element.Translate(100, 100),
			element.Rotate(45),
			element.Scale(2, 3),
		}},
		element.New(element.TagCircle, element.Attrs{"cx": 0.0, "cy": 10.0, "r": 1.0}),
	)
	out := FlipY(in, pageH)

	ts, _ := out.Attrs.Transforms()
	if ts[0].Args[1] != 692 {
		t.Errorf("translate ty = %v, want 692", ts[0].Args[1])
	}
	if ts[0].Args[0] != 100 {
		t.Errorf("translate tx = %v, want 100 (x untouched)", ts[0].Args[0])
	}
	if ts[1].Op != element.OpRotate || ts[1].Args[0] != 45 {
		t.Errorf("rotate changed: %+v", ts[1])
	}
	if ts[2].Args[0] != 2 || ts[2].Args[1] != 3 {
		t.Errorf("scale changed: %+v", ts[2])
	}

	// Children recursed with the same page height.
	if cy, _ := out.Children[0].Attrs.Number("cy"); cy != 782 {
		t.Errorf("child cy = %v, want 782", cy)
	}

	// Input tree untouched.
	origTs, _ := in.Attrs.Transforms()
	if origTs[0].Args[1] != 100 {
		t.Errorf("input mutated: ty = %v", origTs[0].Args[1])
	}
	if cy, _ := in.Children[0].Attrs.Number("cy"); cy != 10 {
		t.Errorf("input child mutated: cy = %v", cy)
	}
}

func TestFlipYPassThrough(t *testing.T) {
	in := element.Element{Tag: "widget", Attrs: element.Attrs{"y": 5.0}}
	out := FlipY(in, pageH)
	if y, _ := out.Attrs.Number("y"); y != 5 {
		t.Errorf("unrecognized tag should pass through, y = %v", y)
	}
}
