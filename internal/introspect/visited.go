package introspect

import (
	"fmt"
	"reflect"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/agentic-research/slidescope/api"
)

// space separates identities that may share an address: an object, the
// backing array of a collection it exposes, and plain pointers.
type space uint8

const (
	spaceObject space = iota
	spaceCollection
	spacePointer
)

// slot is one address namespace. A struct and its first field share an
// address but never a dynamic type, so (space, type, address) is unique
// among live values.
type slot struct {
	space space
	typ   reflect.Type
}

// Visited tracks the values currently being serialized on one call stack.
// A value is removed when its serialization returns, so sibling paths may
// revisit it. The zero value is ready to use.
type Visited struct {
	sets map[slot]*roaring64.Bitmap
}

// NewVisited returns an empty visited set.
func NewVisited() *Visited {
	return &Visited{sets: make(map[slot]*roaring64.Bitmap)}
}

// Contains reports whether obj is on the current serialization stack.
func (v *Visited) Contains(obj Object) bool {
	addr, ok := addressOf(obj)
	return ok && v.has(slot{spaceObject, reflect.TypeOf(obj)}, addr)
}

// Len returns the number of values in progress.
func (v *Visited) Len() int {
	n := 0
	for _, ids := range v.sets {
		n += int(ids.GetCardinality())
	}
	return n
}

func (v *Visited) has(s slot, addr uint64) bool {
	ids, ok := v.sets[s]
	return ok && ids.Contains(addr)
}

// enter records addr under s. It reports false if addr was already there.
func (v *Visited) enter(s slot, addr uint64) bool {
	if v.sets == nil {
		v.sets = make(map[slot]*roaring64.Bitmap)
	}
	ids, ok := v.sets[s]
	if !ok {
		ids = roaring64.New()
		v.sets[s] = ids
	}
	return ids.CheckedAdd(addr)
}

func (v *Visited) leave(s slot, addr uint64) {
	ids, ok := v.sets[s]
	if !ok {
		return
	}
	ids.Remove(addr)
	if ids.IsEmpty() {
		delete(v.sets, s)
	}
}

// addressOf returns the address of obj. Only reference kinds have one.
func addressOf(obj any) (uint64, bool) {
	if obj == nil {
		return 0, false
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return uint64(rv.Pointer()), true
	}
	return 0, false
}

// isNilObject catches typed nil pointers hidden inside an interface.
func isNilObject(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Address returns the hex address used in memory_address fields.
// Value types report 0x0.
func Address(obj any) string {
	addr, _ := addressOf(obj)
	return hexAddr(addr)
}

// ObjectID names obj uniquely among live values: its Go type and address.
// Value types have no identity and report their type at 0x0.
func ObjectID(obj any) string {
	addr, _ := addressOf(obj)
	return objectID(reflect.TypeOf(obj), addr)
}

func objectID(t reflect.Type, addr uint64) string {
	return fmt.Sprintf("%v@%s", t, hexAddr(addr))
}

// BaseIdentity is the identity block of an object with no overrides.
func BaseIdentity(obj Object) Dict {
	return Dict{
		api.KeyClassName:     typeNameOf(obj),
		api.KeyMemoryAddress: Address(obj),
		api.KeyObjectID:      ObjectID(obj),
	}
}

// IsNil reports whether obj is nil or a typed nil.
func IsNil(obj any) bool { return isNilObject(obj) }
