package introspect

import "errors"

// Dict is the JSON-compatible map every introspection result is built from.
type Dict = map[string]any

// ErrNotApplicable is returned by a property accessor when the property has
// no meaning for the object's current state. The property is omitted.
var ErrNotApplicable = errors.New("property not applicable")

// Object is anything that can describe itself through the engine.
// Implementations should be pointer types so identity and cycle tracking
// work; value types serialize but are never tracked in the visited set.
type Object interface {
	TypeName() string
}

// PropertyDeclarer lists the properties an object exposes. This is the
// normal way for a type to participate in the properties block.
type PropertyDeclarer interface {
	IntrospectProperties() []Property
}

// PropertyProvider replaces the declared-property walk entirely. Values
// should be formatted through the frame so depth and cycles are honored.
type PropertyProvider interface {
	IntrospectPropertyMap(f *Frame) Dict
}

// IdentityProvider overrides the identity block. Most implementations start
// from f.BaseIdentity() and add fields.
type IdentityProvider interface {
	IntrospectIdentity(f *Frame) Dict
}

// RelationshipProvider supplies the relationships block.
type RelationshipProvider interface {
	IntrospectRelationships(f *Frame) Dict
}

// ContextProvider supplies the _llm_context block.
type ContextProvider interface {
	IntrospectContext(f *Frame) Dict
}

// Kind distinguishes computed accessors from raw data fields. The privacy
// rule only hides private fields: private computed accessors are always
// included.
type Kind int

const (
	// Computed is a derived accessor.
	Computed Kind = iota
	// Field is stored data.
	Field
)

func (k Kind) String() string {
	if k == Field {
		return "field"
	}
	return "computed"
}

// Property is one declared, individually guarded accessor.
type Property struct {
	Name    string
	Get     func() (any, error)
	Kind    Kind
	Private bool
}

// Prop declares a public computed property.
func Prop(name string, get func() (any, error)) Property {
	return Property{Name: name, Get: get, Kind: Computed}
}

// Val declares a public computed property whose accessor cannot fail.
func Val(name string, get func() any) Property {
	return Property{Name: name, Get: func() (any, error) { return get(), nil }, Kind: Computed}
}

// PrivateField declares private stored data, included only when
// Options.IncludePrivate is set.
func PrivateField(name string, get func() any) Property {
	return Property{
		Name:    name,
		Get:     func() (any, error) { return get(), nil },
		Kind:    Field,
		Private: true,
	}
}

// visible reports whether p belongs in the properties block.
func (p Property) visible(includePrivate bool) bool {
	return !p.Private || p.Kind == Computed || includePrivate
}
