package render

import (
	"math"
	"strings"

	"github.com/inkpress/inkpress/pkg/element"
	"github.com/inkpress/inkpress/pkg/errors"
)

// Matrix is a 6-value affine transform [a b c d e f] in PDF convention:
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Matrix [6]float64

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Translation builds a translation matrix.
func Translation(dx, dy float64) Matrix {
	return Matrix{1, 0, 0, 1, dx, dy}
}

// Rotation builds a rotation matrix for the given angle in degrees.
func Rotation(degrees float64) Matrix {
	theta := degrees * math.Pi / 180
	sin, cos := math.Sin(theta), math.Cos(theta)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Scaling builds a scale matrix.
func Scaling(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Multiply returns m x n (m applied first, then n).
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

// String formats the matrix as the six space-separated operands of a cm
// operator.
func (m Matrix) String() string {
	parts := make([]string, 6)
	for i, v := range m {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

// Compose folds an ordered transform list into one matrix, left to right.
// An empty list composes to the identity.
func Compose(transforms []element.Transform) (Matrix, error) {
	m := Identity
	for _, t := range transforms {
		op, err := transformMatrix(t)
		if err != nil {
			return Identity, err
		}
		m = m.Multiply(op)
	}
	return m, nil
}

func transformMatrix(t element.Transform) (Matrix, error) {
	switch t.Op {
	case element.OpTranslate:
		if len(t.Args) != 2 {
			break
		}
		return Translation(t.Args[0], t.Args[1]), nil
	case element.OpRotate:
		if len(t.Args) != 1 {
			break
		}
		return Rotation(t.Args[0]), nil
	case element.OpScale:
		if len(t.Args) != 2 {
			break
		}
		return Scaling(t.Args[0], t.Args[1]), nil
	default:
		return Identity, errors.New(errors.ErrCodeUnsupportedTransform,
			"unknown transform op: %s", t.Op)
	}
	return Identity, errors.New(errors.ErrCodeUnsupportedTransform,
		"transform %s has %d argument(s)", t.Op, len(t.Args))
}
