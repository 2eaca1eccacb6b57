package render

import (
	"math"
	"testing"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
)

func TestComposeEmptyIsIdentity(t *testing.T) {
	m, err := Compose(nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if m != Identity {
		t.Errorf("Compose([]) = %v, want identity", m)
	}
}

func TestComposeTranslateInverse(t *testing.T) {
	for _, pair := range [][2]float64{{100, 100}, {-3.5, 7}, {0, 0}, {1e6, -1e6}} {
		dx, dy := pair[0], pair[1]
		m, err := Compose([]element.Transform{
			element.Translate(dx, dy),
			element.Translate(-dx, -dy),
		})
		if err != nil {
			t.Fatalf("Compose: %v", err)
		}
		if m != Identity {
			t.Errorf("translate(%v,%v) then inverse = %v, want identity", dx, dy, m)
		}
	}
}

func TestComposeOrderMatters(t *testing.T) {
	a, _ := Compose([]element.Transform{element.Scale(2, 2), element.Translate(10, 0)})
	b, _ := Compose([]element.Transform{element.Translate(10, 0), element.Scale(2, 2)})
	if a == b {
		t.Error("scale-then-translate should differ from translate-then-scale")
	}
	// Left-to-right fold: scale applied first means the later translation
	// is not scaled.
	if a[4] != 10 {
		t.Errorf("scale then translate: e = %v, want 10", a[4])
	}
	if b[4] != 20 {
		t.Errorf("translate then scale: e = %v, want 20", b[4])
	}
}

func TestRotationMatrix(t *testing.T) {
	m := Rotation(90)
	want := Matrix{math.Cos(math.Pi / 2), math.Sin(math.Pi / 2), -math.Sin(math.Pi / 2), math.Cos(math.Pi / 2), 0, 0}
	if m != want {
		t.Errorf("Rotation(90) = %v, want %v", m, want)
	}
}

func TestMatrixString(t *testing.T) {
	if got := Translation(100, 100).String(); got != "1 0 0 1 100 100" {
		t.Errorf("String = %q", got)
	}
	if got := Scaling(0.5, 2).String(); got != "0.5 0 0 2 0 0" {
		t.Errorf("String = %q", got)
	}
}

func TestComposeRejectsUnknownOp(t *testing.T) {
	_, err := Compose([]element.Transform{{Op: "skew", Args: []float64{1}}})
	if !errors.Is(err, errors.ErrCodeUnsupportedTransform) {
		t.Errorf("err = %v, want UNSUPPORTED_TRANSFORM", err)
	}
}
