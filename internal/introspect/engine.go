package introspect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/agentic-research/slidescope/api"
)

var errNilObject = errors.New("nil object")

// Engine serializes Objects using a formatter registry.
type Engine struct {
	registry *Registry
}

// NewEngine returns an engine backed by r. A nil registry means DefaultRegistry.
func NewEngine(r *Registry) *Engine {
	if r == nil {
		r = DefaultRegistry
	}
	return &Engine{registry: r}
}

var defaultEngine = NewEngine(nil)

// Serialize renders obj with the default engine.
func Serialize(obj Object, opts Options) Dict {
	return defaultEngine.Serialize(obj, opts)
}

// ToDict is Serialize with functional options applied over DefaultOptions.
func ToDict(obj Object, opts ...Option) Dict {
	return defaultEngine.Serialize(obj, Apply(opts...))
}

// Serialize produces the dict form of obj. It never panics on problems in
// obj's properties; those surface as _error entries in the result.
func (e *Engine) Serialize(obj Object, opts Options) Dict {
	if isNilObject(obj) {
		return newErrorContext("object", errNilObject, obj)
	}
	typ := typeNameOf(obj)

	if opts.MaxDepth <= 0 {
		return Dict{api.KeyTruncated: "Max depth reached for " + typ}
	}
	if opts.Visited == nil {
		opts.Visited = NewVisited()
	}

	key := slot{spaceObject, reflect.TypeOf(obj)}
	addr, tracked := addressOf(obj)
	if tracked {
		if !opts.Visited.enter(key, addr) {
			return Dict{api.KeyReference: fmt.Sprintf("Circular reference to %s at %s", typ, hexAddr(addr))}
		}
		defer opts.Visited.leave(key, addr)
	}

	f := &Frame{engine: e, self: obj, typ: typ, key: key, addr: addr, tracked: tracked, opts: opts}
	out := Dict{api.KeyObjectType: typ}

	if opts.Fields == nil {
		out[api.KeyIdentity] = f.identity()
		out[api.KeyProperties] = f.properties()
		if opts.IncludeRelationships {
			out[api.KeyRelationships] = f.relationships()
		}
		if opts.FormatForLLM {
			out[api.KeyContext] = f.context()
		}
		return out
	}

	tree := ParseFieldPaths(opts.Fields)
	if sub, ok := tree.Select(api.KeyIdentity); ok {
		out[api.KeyIdentity] = FilterByTree(f.identity(), sub)
	}
	if sub, ok := tree.Select(api.KeyProperties); ok {
		out[api.KeyProperties] = FilterByTree(f.properties(), sub)
	}
	if sub, ok := tree.Select(api.KeyRelationships); ok && opts.IncludeRelationships {
		out[api.KeyRelationships] = FilterByTree(f.relationships(), sub)
	}
	if sub, ok := tree.Select(api.KeyContext); ok && opts.FormatForLLM {
		out[api.KeyContext] = FilterByTree(f.context(), sub)
	}
	return out
}

// Frame is the view of one in-progress Serialize call handed to hooks.
type Frame struct {
	engine  *Engine
	self    Object
	typ     string
	key     slot
	addr    uint64
	tracked bool
	opts    Options
}

// Options returns the options of the current call.
func (f *Frame) Options() Options { return f.opts }

// Depth is the budget for values one level below the current object.
func (f *Frame) Depth() int { return f.opts.MaxDepth - 1 }

// TypeName returns the type name of the object being serialized.
func (f *Frame) TypeName() string { return f.typ }

// BaseIdentity returns the default identity block.
func (f *Frame) BaseIdentity() Dict {
	return Dict{
		api.KeyClassName:     f.typ,
		api.KeyMemoryAddress: hexAddr(f.addr),
		api.KeyObjectID:      objectID(f.key.typ, f.addr),
	}
}

// Format formats v one level below the current object. label names the
// value in any error context.
func (f *Frame) Format(label string, v any) any {
	return f.FormatAt(label, v, f.Depth())
}

// FormatAt formats v with an explicit depth budget.
func (f *Frame) FormatAt(label string, v any, depth int) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = newErrorContext(label, panicError(r), v)
		}
	}()
	res, err := f.format(label, v, depth)
	if err != nil {
		return newErrorContext(label, err, v)
	}
	return res
}

// Related serializes a related object with relationships disabled and
// collections summarized, sharing the visited set.
func (f *Frame) Related(obj Object, depth int) Dict {
	if isNilObject(obj) {
		return nil
	}
	opts := f.nested(depth)
	opts.ExpandCollections = false
	return f.engine.Serialize(obj, opts)
}

// Summarize returns the collection summary of v.
func (f *Frame) Summarize(v any) Dict {
	return Summarize(v)
}

// ErrorContext builds an error stand-in for a failed value.
func (f *Frame) ErrorContext(label string, err error, value any) Dict {
	return newErrorContext(label, err, value)
}

// nested returns options for a value reached through a property.
func (f *Frame) nested(depth int) Options {
	o := f.opts
	o.MaxDepth = depth
	o.IncludeRelationships = false
	o.Fields = nil
	return o
}

func (f *Frame) identity() (out Dict) {
	p, ok := f.self.(IdentityProvider)
	if !ok {
		return f.BaseIdentity()
	}
	defer func() {
		if r := recover(); r != nil {
			out = f.BaseIdentity()
		}
	}()
	if id := p.IntrospectIdentity(f); id != nil {
		return id
	}
	return f.BaseIdentity()
}

func (f *Frame) properties() (out Dict) {
	defer func() {
		if r := recover(); r != nil {
			out = Dict{}
		}
	}()
	if p, ok := f.self.(PropertyProvider); ok {
		if m := p.IntrospectPropertyMap(f); m != nil {
			return m
		}
		return Dict{}
	}
	d, ok := f.self.(PropertyDeclarer)
	if !ok {
		return Dict{}
	}
	props := Dict{}
	for _, p := range d.IntrospectProperties() {
		if p.Name == "" || p.Get == nil || !p.visible(f.opts.IncludePrivate) {
			continue
		}
		v, ok := readProperty(p)
		if !ok {
			continue
		}
		props[p.Name] = f.Format(p.Name, v)
	}
	return props
}

// readProperty calls the accessor in isolation. Failures omit the property.
func readProperty(p Property) (v any, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v, ok = nil, false
		}
	}()
	v, err := p.Get()
	if err != nil {
		return nil, false
	}
	return v, true
}

func (f *Frame) relationships() (out Dict) {
	p, ok := f.self.(RelationshipProvider)
	if !ok {
		return Dict{}
	}
	defer func() {
		if r := recover(); r != nil {
			out = newErrorContext("relationships", panicError(r), f.self)
		}
	}()
	if rels := p.IntrospectRelationships(f); rels != nil {
		return rels
	}
	return Dict{}
}

func (f *Frame) context() (out Dict) {
	base := f.BaseContext()
	p, ok := f.self.(ContextProvider)
	if !ok {
		return base
	}
	defer func() {
		if r := recover(); r != nil {
			out = base
		}
	}()
	if ctx := p.IntrospectContext(f); ctx != nil {
		return ctx
	}
	return base
}

// BaseContext returns the default one-line context block.
func (f *Frame) BaseContext() Dict {
	return Dict{api.KeyDescription: fmt.Sprintf("A %s object.", f.typ)}
}

func hexAddr(addr uint64) string {
	return fmt.Sprintf("0x%x", addr)
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
