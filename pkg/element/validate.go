package element

import (
	"github.com/inkpress/inkpress/pkg/errors"
)

// attrRule describes one attribute of an element kind.
type attrRule struct {
	name     string
	kind     attrKind
	required bool
}

type attrKind int

const (
	attrNumber attrKind = iota
	attrPositiveNumber
	attrNonNegativeNumber
	attrString
	attrTransformList
	attrMargins
)

// rules is the fixed attribute schema per tag. Attributes not listed here
// are rejected as unknown for that element kind.
var rules = map[Tag][]attrRule{
	TagRect: {
		{"x", attrNumber, true},
		{"y", attrNumber, true},
		{"width", attrNumber, true},
		{"height", attrNumber, true},
		{"fill", attrString, false},
		{"stroke", attrString, false},
		{"stroke_width", attrNumber, false},
	},
	TagCircle: {
		{"cx", attrNumber, true},
		{"cy", attrNumber, true},
		{"r", attrNonNegativeNumber, true},
		{"fill", attrString, false},
		{"stroke", attrString, false},
		{"stroke_width", attrNumber, false},
	},
	TagLine: {
		{"x1", attrNumber, true},
		{"y1", attrNumber, true},
		{"x2", attrNumber, true},
		{"y2", attrNumber, true},
		{"stroke", attrString, false},
		{"stroke_width", attrNumber, false},
	},
	TagText: {
		{"x", attrNumber, true},
		{"y", attrNumber, true},
		{"font", attrString, true},
		{"size", attrPositiveNumber, true},
		{"fill", attrString, false},
	},
	TagPath: {
		{"d", attrString, true},
		{"fill", attrString, false},
		{"stroke", attrString, false},
		{"stroke_width", attrNumber, false},
	},
	TagGroup: {
		{AttrTransforms, attrTransformList, false},
	},
	TagImage: {
		{"src", attrString, true},
		{"x", attrNumber, true},
		{"y", attrNumber, true},
		{"width", attrPositiveNumber, true},
		{"height", attrPositiveNumber, true},
	},
	TagEmoji: {
		{"code", attrString, true},
		{"x", attrNumber, true},
		{"y", attrNumber, true},
		{"size", attrPositiveNumber, true},
	},
	TagDocument: {
		{"title", attrString, false},
		{"author", attrString, false},
		{"subject", attrString, false},
		{"keywords", attrString, false},
		{"creator", attrString, false},
		{"producer", attrString, false},
		{"width", attrPositiveNumber, false},
		{"height", attrPositiveNumber, false},
		{"margins", attrMargins, false},
	},
	TagPage: {
		{"width", attrPositiveNumber, false},
		{"height", attrPositiveNumber, false},
		{"margins", attrMargins, false},
	},
}

// Validate checks an element's attribute map against the fixed schema for
// its tag and returns a normalized copy: numeric values widened to
// float64, transform lists parsed into []Transform, margin tuples into
// Margins.
//
// Validation is fail-fast: the first violation aborts with a structured
// error identifying the element kind and attribute.
func Validate(tag Tag, attrs Attrs) (Attrs, error) {
	schema, ok := rules[tag]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownElement, "unknown element tag: %s", tag)
	}

	out := make(Attrs, len(attrs))
	seen := make(map[string]bool, len(schema))
	for _, rule := range schema {
		seen[rule.name] = true
		v, present := attrs[rule.name]
		if !present {
			if rule.required {
				return nil, errors.NewAttributeError(string(tag), rule.name, describe(rule.kind), nil)
			}
			continue
		}
		norm, err := normalize(tag, rule, v)
		if err != nil {
			return nil, err
		}
		out[rule.name] = norm
	}

	for k := range attrs {
		if !seen[k] {
			return nil, errors.NewAttributeError(string(tag), k, "a known attribute", attrs[k])
		}
	}
	return out, nil
}

func normalize(tag Tag, rule attrRule, v any) (any, error) {
	switch rule.kind {
	case attrNumber, attrPositiveNumber, attrNonNegativeNumber:
		n, ok := asNumber(v)
		if !ok {
			return nil, errors.NewAttributeError(string(tag), rule.name, describe(rule.kind), v)
		}
		if rule.kind == attrPositiveNumber && n <= 0 {
			return nil, errors.NewAttributeError(string(tag), rule.name, describe(rule.kind), v)
		}
		if rule.kind == attrNonNegativeNumber && n < 0 {
			return nil, errors.NewAttributeError(string(tag), rule.name, describe(rule.kind), v)
		}
		return n, nil

	case attrString:
		s, ok := v.(string)
		if !ok || s == "" {
			return nil, errors.NewAttributeError(string(tag), rule.name, describe(rule.kind), v)
		}
		return s, nil

	case attrTransformList:
		return normalizeTransforms(tag, rule.name, v)

	case attrMargins:
		return normalizeMargins(tag, rule.name, v)
	}
	return nil, errors.New(errors.ErrCodeInternal, "unhandled attribute kind for %s.%s", tag, rule.name)
}

// normalizeTransforms accepts either an already-typed []Transform or the
// raw wire form [][op, [args...]] produced by generic JSON decoding.
func normalizeTransforms(tag Tag, name string, v any) (any, error) {
	switch ts := v.(type) {
	case []Transform:
		for _, t := range ts {
			if _, err := ParseTransform(string(t.Op), t.Args); err != nil {
				return nil, err
			}
		}
		return ts, nil
	case []any:
		out := make([]Transform, 0, len(ts))
		for _, raw := range ts {
			pair, ok := raw.([]any)
			if !ok || len(pair) != 2 {
				return nil, errors.NewAttributeError(string(tag), name, "an [op, args] transform pair", raw)
			}
			op, ok := pair[0].(string)
			if !ok {
				return nil, errors.NewAttributeError(string(tag), name, "a transform op name", pair[0])
			}
			rawArgs, ok := pair[1].([]any)
			if !ok {
				return nil, errors.NewAttributeError(string(tag), name, "a transform argument list", pair[1])
			}
			args := make([]float64, 0, len(rawArgs))
			for _, a := range rawArgs {
				n, ok := asNumber(a)
				if !ok {
					return nil, errors.NewAttributeError(string(tag), name, "numeric transform arguments", a)
				}
				args = append(args, n)
			}
			t, err := ParseTransform(op, args)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil
	}
	return nil, errors.NewAttributeError(string(tag), name, "a transform list", v)
}

func normalizeMargins(tag Tag, name string, v any) (any, error) {
	if m, ok := v.(Margins); ok {
		return m, nil
	}
	raw, ok := v.([]any)
	if !ok || len(raw) != 4 {
		if fs, ok := v.([]float64); ok && len(fs) == 4 {
			return Margins{fs[0], fs[1], fs[2], fs[3]}, nil
		}
		return nil, errors.NewAttributeError(string(tag), name, "a 4-element [top,right,bottom,left] tuple", v)
	}
	var m Margins
	for i, a := range raw {
		n, ok := asNumber(a)
		if !ok {
			return nil, errors.NewAttributeError(string(tag), name, "numeric margin components", a)
		}
		m[i] = n
	}
	return m, nil
}

func describe(k attrKind) string {
	switch k {
	case attrNumber:
		return "a number"
	case attrPositiveNumber:
		return "a positive number"
	case attrNonNegativeNumber:
		return "a non-negative number"
	case attrString:
		return "a non-empty string"
	case attrTransformList:
		return "a transform list"
	case attrMargins:
		return "a 4-element margin tuple"
	}
	return "a valid value"
}
