package query

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Select evaluates a JSONPath expression against an introspection result or
// tree node map. The input is first reduced to plain JSON values so typed
// slices and numbers are reachable by the path.
func Select(root any, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", expr, err)
	}
	data, err := plain(root)
	if err != nil {
		return nil, err
	}
	return x.Get(data), nil
}

// First is Select returning only the first match.
func First(root any, expr string) (any, bool, error) {
	matches, err := Select(root, expr)
	if err != nil || len(matches) == 0 {
		return nil, false, err
	}
	return matches[0], true, nil
}

func plain(v any) (any, error) {
	data, err := oj.ParseString(oj.JSON(v))
	if err != nil {
		return nil, fmt.Errorf("normalizing %T: %w", v, err)
	}
	return data, nil
}
