package element

import (
	"encoding/json"
	"fmt"

	"github.com/inkpress/inkpress/pkg/errors"
)

// TransformOp identifies one affine transform operation.
type TransformOp string

// Supported transform operations.
const (
	OpTranslate TransformOp = "translate"
	OpRotate    TransformOp = "rotate"
	OpScale     TransformOp = "scale"
)

// Transform is one operation of a group's ordered transform list.
// Argument layout per op:
//
//	translate: [dx, dy]
//	rotate:    [degrees]
//	scale:     [sx, sy]
type Transform struct {
	Op   TransformOp
	Args []float64
}

// Translate builds a translation by (dx, dy).
func Translate(dx, dy float64) Transform {
	return Transform{Op: OpTranslate, Args: []float64{dx, dy}}
}

// Rotate builds a rotation by degrees (counter-clockwise in PDF space).
func Rotate(degrees float64) Transform {
	return Transform{Op: OpRotate, Args: []float64{degrees}}
}

// Scale builds a scale by (sx, sy).
func Scale(sx, sy float64) Transform {
	return Transform{Op: OpScale, Args: []float64{sx, sy}}
}

// argCount is the required argument count per operation.
var argCount = map[TransformOp]int{
	OpTranslate: 2,
	OpRotate:    1,
	OpScale:     2,
}

// ParseTransform validates an (op, args) pair from an input surface.
// Unrecognized operations fail with UNSUPPORTED_TRANSFORM.
func ParseTransform(op string, args []float64) (Transform, error) {
	want, ok := argCount[TransformOp(op)]
	if !ok {
		return Transform{}, errors.New(errors.ErrCodeUnsupportedTransform,
			"unknown transform op: %s", op)
	}
	if len(args) != want {
		return Transform{}, errors.New(errors.ErrCodeUnsupportedTransform,
			"transform %s requires %d argument(s), got %d", op, want, len(args))
	}
	return Transform{Op: TransformOp(op), Args: args}, nil
}

// MarshalJSON encodes the transform in the wire grammar ["op", [args...]].
func (t Transform) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{string(t.Op), t.Args})
}

// UnmarshalJSON decodes the ["op", [args...]] wire grammar.
func (t *Transform) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("transform: expected [op, args] pair, got %d elements", len(raw))
	}
	var op string
	if err := json.Unmarshal(raw[0], &op); err != nil {
		return fmt.Errorf("transform op: %w", err)
	}
	var args []float64
	if err := json.Unmarshal(raw[1], &args); err != nil {
		return fmt.Errorf("transform args: %w", err)
	}
	parsed, err := ParseTransform(op, args)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
