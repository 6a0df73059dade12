package tree

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Access paths locate a tree node from the root as a chain of indexed
// accessors. The root's path is empty.
// E.g. "slides[0].shapes[3].shapes[1]"

// ErrInvalidAccessPath is returned for strings that are not accessor chains.
var ErrInvalidAccessPath = errors.New("invalid access path")

// Step is one indexed accessor.
type Step struct {
	Accessor string
	Index    int
}

func (s Step) String() string {
	return s.Accessor + "[" + strconv.Itoa(s.Index) + "]"
}

// Join appends accessor[index] to parent. No separator is added under the
// root.
// E.g. Join("", "slides", 0) → "slides[0]"; Join("slides[0]", "shapes", 2) → "slides[0].shapes[2]"
func Join(parent, accessor string, index int) string {
	step := Step{Accessor: accessor, Index: index}.String()
	if parent == "" {
		return step
	}
	return parent + "." + step
}

// ParseAccessPath splits a path into its steps. The empty path is the
// root and has no steps.
func ParseAccessPath(path string) ([]Step, error) {
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ".")
	steps := make([]Step, 0, len(parts))
	for _, part := range parts {
		step, err := parseStep(part)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidAccessPath, path, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseStep(part string) (Step, error) {
	open := strings.IndexByte(part, '[')
	if open <= 0 || !strings.HasSuffix(part, "]") {
		return Step{}, fmt.Errorf("segment %q is not accessor[index]", part)
	}
	accessor := part[:open]
	for _, r := range accessor {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return Step{}, fmt.Errorf("segment %q has an invalid accessor", part)
		}
	}
	idx, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || idx < 0 {
		return Step{}, fmt.Errorf("segment %q has an invalid index", part)
	}
	return Step{Accessor: accessor, Index: idx}, nil
}

// Parent strips the last step from path.
// E.g. "slides[0].shapes[2]" → "slides[0]"; "slides[0]" → ""
func Parent(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
