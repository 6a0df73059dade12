package introspect

import (
	"fmt"
	"unicode/utf8"

	"github.com/agentic-research/slidescope/api"
)

const maxReprLen = 100

// newErrorContext builds the stand-in for a value that failed to format.
func newErrorContext(label string, err error, value any) Dict {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	return Dict{
		api.KeyObjectType: "SerializationError_" + label,
		api.KeyError: Dict{
			"type":       label,
			"message":    err.Error(),
			"error_type": fmt.Sprintf("%T", err),
			"value_type": fmt.Sprintf("%T", value),
			"value_repr": safeRepr(value),
		},
	}
}

// IsErrorContext reports whether v is an error stand-in.
func IsErrorContext(v any) bool {
	d, ok := v.(Dict)
	if !ok {
		return false
	}
	_, ok = d[api.KeyError]
	return ok
}

func safeRepr(value any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<%T: repr failed>", value)
		}
	}()
	s = fmt.Sprintf("%+v", value)
	if utf8.RuneCountInString(s) > maxReprLen {
		runes := []rune(s)
		s = string(runes[:maxReprLen]) + "..."
	}
	return s
}
