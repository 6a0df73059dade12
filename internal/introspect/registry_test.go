package introspect

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type celsius float64

type shade int

func (s shade) EnumInfo() EnumInfo {
	return EnumInfo{
		Type:        "SHADE",
		Name:        [...]string{"LIGHT", "DARK"}[s],
		Value:       int(s),
		Description: "A shade.",
		XMLValue:    [...]string{"lt", ""}[s],
	}
}

type holder struct{ value any }

func (h *holder) TypeName() string { return "Holder" }

func (h *holder) IntrospectProperties() []Property {
	return []Property{Val("value", func() any { return h.value })}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	Register(r, func(c celsius) (any, error) { return Dict{"degrees": float64(c)}, nil })

	fn, ok := r.Lookup(reflect.TypeFor[celsius]())
	require.True(t, ok)
	out, err := fn(celsius(21.5))
	require.NoError(t, err)
	assert.Equal(t, Dict{"degrees": 21.5}, out)

	_, ok = r.Lookup(reflect.TypeFor[int]())
	assert.False(t, ok)

	// Cached miss is invalidated by a later registration.
	Register(r, func(i int) (any, error) { return "int!", nil })
	_, ok = r.Lookup(reflect.TypeFor[int]())
	assert.True(t, ok)

	assert.Equal(t, []string{"int", "introspect.celsius"}, r.Types())
}

func TestRegistryInterfaceMatch(t *testing.T) {
	r := NewRegistry()
	Register(r, FormatEnum)

	fn, ok := r.Lookup(reflect.TypeFor[shade]())
	require.True(t, ok)
	out, err := fn(shade(0))
	require.NoError(t, err)
	assert.Equal(t, Dict{
		"_object_type": "SHADE",
		"name":         "LIGHT",
		"value":        0,
		"description":  "A shade.",
		"xml_value":    "lt",
	}, out)

	out, err = fn(shade(1))
	require.NoError(t, err)
	assert.NotContains(t, out, "xml_value")
}

func TestEngineUsesRegistry(t *testing.T) {
	r := NewRegistry()
	Register(r, func(c celsius) (any, error) {
		if c < -273.15 {
			return nil, errors.New("below absolute zero")
		}
		return Dict{"degrees": float64(c)}, nil
	})
	e := NewEngine(r)

	got := e.Serialize(&holder{value: celsius(10)}, DefaultOptions())
	assert.Equal(t, Dict{"degrees": 10.0}, got["properties"].(Dict)["value"])

	got = e.Serialize(&holder{value: celsius(-300)}, DefaultOptions())
	assert.True(t, IsErrorContext(got["properties"].(Dict)["value"]))

	// Pointers to registered types are dereferenced first.
	c := celsius(5)
	got = e.Serialize(&holder{value: &c}, DefaultOptions())
	assert.Equal(t, Dict{"degrees": 5.0}, got["properties"].(Dict)["value"])

	// The default engine has no formatter for celsius and converts it.
	got = ToDict(&holder{value: celsius(3)})
	assert.Equal(t, 3.0, got["properties"].(Dict)["value"])
}

func TestDefaultFormatters(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got := ToDict(&holder{value: ts})
	assert.Equal(t, "2024-05-01T12:00:00Z", got["properties"].(Dict)["value"])

	got = ToDict(&holder{value: time.Time{}})
	assert.Nil(t, got["properties"].(Dict)["value"])

	got = ToDict(&holder{value: shade(1)})
	assert.Equal(t, "DARK", got["properties"].(Dict)["value"].(Dict)["name"])
}
