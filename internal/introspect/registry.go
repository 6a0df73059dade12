package introspect

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/agentic-research/slidescope/api"
)

// Formatter renders a leaf value into its structured form.
type Formatter func(v any) (any, error)

type matcher struct {
	iface reflect.Type
	fn    Formatter
}

type resolved struct {
	fn Formatter
	ok bool
}

// Registry maps leaf value types to formatters. Exact types win over
// interface matchers; matchers are tried in registration order.
// Resolutions are cached per concrete type.
type Registry struct {
	mu       sync.RWMutex
	exact    map[reflect.Type]Formatter
	matchers []matcher
	cache    *lru.Cache[reflect.Type, resolved]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	cache, err := lru.New[reflect.Type, resolved](512)
	if err != nil {
		panic(fmt.Sprintf("introspect: create formatter cache: %v", err))
	}
	return &Registry{
		exact: make(map[reflect.Type]Formatter),
		cache: cache,
	}
}

// DefaultRegistry is used by Serialize and ToDict.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, formatTime)
	Register(r, FormatEnum)
	return r
}

// Register adds fn for T. When T is an interface type, every concrete type
// implementing it matches.
func Register[T any](r *Registry, fn func(T) (any, error)) {
	t := reflect.TypeFor[T]()
	wrapped := func(v any) (any, error) {
		tv, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("formatter for %s got %T", t, v)
		}
		return fn(tv)
	}
	if t.Kind() == reflect.Interface {
		r.RegisterInterface(t, wrapped)
		return
	}
	r.RegisterType(t, wrapped)
}

// RegisterType adds fn for the exact type t, replacing any previous entry.
func (r *Registry) RegisterType(t reflect.Type, fn Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[t] = fn
	r.cache.Purge()
}

// RegisterInterface adds fn for every type implementing iface.
func (r *Registry) RegisterInterface(iface reflect.Type, fn Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchers = append(r.matchers, matcher{iface: iface, fn: fn})
	r.cache.Purge()
}

// Lookup finds the formatter for t.
func (r *Registry) Lookup(t reflect.Type) (Formatter, bool) {
	if t == nil {
		return nil, false
	}
	if res, ok := r.cache.Get(t); ok {
		return res.fn, res.ok
	}

	r.mu.RLock()
	res := r.resolve(t)
	r.mu.RUnlock()

	r.cache.Add(t, res)
	return res.fn, res.ok
}

func (r *Registry) resolve(t reflect.Type) resolved {
	if fn, ok := r.exact[t]; ok {
		return resolved{fn: fn, ok: true}
	}
	for _, m := range r.matchers {
		if t.Implements(m.iface) {
			return resolved{fn: m.fn, ok: true}
		}
	}
	return resolved{}
}

// Types lists the registered type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.exact)+len(r.matchers))
	for t := range r.exact {
		names = append(names, t.String())
	}
	for _, m := range r.matchers {
		names = append(names, m.iface.String())
	}
	sort.Strings(names)
	return names
}

// EnumInfo describes one enumeration member.
type EnumInfo struct {
	Type        string
	Name        string
	Value       int
	Description string
	// XMLValue is the serialized attribute value, if the member has one.
	XMLValue string
}

// Enum is implemented by enumeration types.
type Enum interface {
	EnumInfo() EnumInfo
}

// FormatEnum renders an enumeration member.
func FormatEnum(e Enum) (any, error) {
	info := e.EnumInfo()
	out := Dict{
		api.KeyObjectType: info.Type,
		"name":            info.Name,
		"value":           info.Value,
		"description":     info.Description,
	}
	if info.XMLValue != "" {
		out["xml_value"] = info.XMLValue
	}
	return out, nil
}

func formatTime(t time.Time) (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(time.RFC3339), nil
}
