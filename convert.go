package nbt

import (
	"context"
	"reflect"
	"sync"
)

// Converter translates between one tag variant and one native Go type.
//
// Converters receive the registry they were resolved from so container
// converters can recurse into their children.
type Converter interface {
	// ToValue converts t into its native value.
	ToValue(c *Converters, t Tag) (any, error)

	// ToTag converts v into a tag named name.
	ToTag(c *Converters, name string, v any) (Tag, error)
}

var anyType = reflect.TypeFor[any]()

// Converters is a bidirectional mapping between tag variants and native Go
// types.
//
// ToTag resolves a value's converter through a deterministic closure of its
// type; see Closure. Registration is expected to complete before use; the
// registry is nonetheless safe for concurrent use.
type Converters struct {
	mu        sync.RWMutex
	byVariant map[Variant]Converter
	byType    map[reflect.Type]Converter
	ifaces    []reflect.Type
}

var (
	defaultConverters     *Converters
	defaultConvertersOnce sync.Once
)

// DefaultConverters returns the process-wide converter registry, initialized
// with the built-in converters on first use.
func DefaultConverters() *Converters {
	defaultConvertersOnce.Do(func() {
		defaultConverters = NewConverters()
	})
	return defaultConverters
}

// ToValue converts t with the process-wide converter registry.
func ToValue(t Tag) (any, error) {
	return DefaultConverters().ToValue(t)
}

// ToTag converts v with the process-wide converter registry.
func ToTag(name string, v any) (Tag, error) {
	return DefaultConverters().ToTag(name, v)
}

// NewConverters returns a converter registry holding the built-in converters.
func NewConverters() *Converters {
	c := &Converters{
		byVariant: make(map[Variant]Converter),
		byType:    make(map[reflect.Type]Converter),
	}
	registerBuiltinConverters(c)
	return c
}

// Register maps variant and typ to conv in both directions.
// It fails with ErrVariantCollision if either is already registered.
//
// Interface types take part in fallback resolution in registration order.
// The empty interface is the opaque fallback and is always tried last.
func (c *Converters) Register(variant Variant, typ reflect.Type, conv Converter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byVariant[variant]; ok {
		return newConversionError(ErrVariantCollision, variant, nil, nil)
	}
	if _, ok := c.byType[typ]; ok {
		return newConversionError(ErrVariantCollision, "", typ, nil)
	}
	c.byVariant[variant] = conv
	c.addType(typ, conv)
	return nil
}

// RegisterType maps typ to conv for ToTag only, without claiming a variant.
// It fails with ErrVariantCollision if typ is already registered.
func (c *Converters) RegisterType(typ reflect.Type, conv Converter) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byType[typ]; ok {
		return newConversionError(ErrVariantCollision, "", typ, nil)
	}
	c.addType(typ, conv)
	return nil
}

func (c *Converters) addType(typ reflect.Type, conv Converter) {
	c.byType[typ] = conv
	if typ.Kind() == reflect.Interface && typ != anyType {
		c.ifaces = append(c.ifaces, typ)
	}
}

// ToValue converts t into its native value using the converter registered
// for t's exact variant. A nil tag or a tag with a nil value yields nil.
func (c *Converters) ToValue(t Tag) (any, error) {
	if t == nil || t.Value() == nil {
		return nil, nil
	}

	c.mu.RLock()
	conv, ok := c.byVariant[t.Variant()]
	c.mu.RUnlock()

	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), nil, nil)
	}
	return conv.ToValue(c, t)
}

// ToTag converts v into a tag named name. A nil v yields a nil Tag.
//
// The converter for v's exact type is used if present; otherwise the first
// type in Closure(reflect.TypeOf(v)) with a converter is used.
func (c *Converters) ToTag(name string, v any) (Tag, error) {
	if v == nil {
		return nil, nil
	}

	typ := reflect.TypeOf(v)
	conv, resolved, ok := c.resolve(typ)
	if !ok {
		return nil, newConversionError(ErrNoConverter, "", typ, nil)
	}
	if resolved != typ {
		emitConverterFallback(context.Background(), typ, resolved)
	}
	return conv.ToTag(c, name, v)
}

func (c *Converters) resolve(typ reflect.Type) (Converter, reflect.Type, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if conv, ok := c.byType[typ]; ok {
		return conv, typ, true
	}
	for _, t := range c.closure(typ) {
		if conv, ok := c.byType[t]; ok {
			return conv, t, true
		}
	}
	return nil, nil, false
}

// Closure returns the fallback resolution order for typ:
//
//  1. typ itself
//  2. pointer element types, breadth-first with step 3
//  3. canonical unnamed types: a named scalar becomes the predeclared type
//     of its kind (int becomes int64), a slice or array becomes a slice of
//     its canonical element and then []any, a string-keyed map becomes
//     map[string]any
//  4. registered interface types implemented by any type above, in
//     registration order
//  5. the empty interface, if an opaque converter is registered
func (c *Converters) Closure(typ reflect.Type) []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closure(typ)
}

func (c *Converters) closure(typ reflect.Type) []reflect.Type {
	seen := make(map[reflect.Type]bool)
	var out []reflect.Type

	queue := []reflect.Type{typ}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)

		if t.Kind() == reflect.Pointer {
			queue = append(queue, t.Elem())
		}
		queue = append(queue, canonicalTypes(t)...)
	}

	concrete := len(out)
	for _, it := range c.ifaces {
		for _, t := range out[:concrete] {
			if t.Implements(it) {
				out = append(out, it)
				break
			}
		}
	}

	if _, ok := c.byType[anyType]; ok {
		out = append(out, anyType)
	}
	return out
}

var (
	bytesType = reflect.TypeFor[[]byte]()
	slicesAny = reflect.TypeFor[[]any]()
	mapAny    = reflect.TypeFor[map[string]any]()
)

// canonicalScalar returns the predeclared type for a scalar kind with a
// built-in converter, or nil.
func canonicalScalar(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Int8:
		return reflect.TypeFor[int8]()
	case reflect.Int16:
		return reflect.TypeFor[int16]()
	case reflect.Int32:
		return reflect.TypeFor[int32]()
	case reflect.Int64, reflect.Int:
		return reflect.TypeFor[int64]()
	case reflect.Float32:
		return reflect.TypeFor[float32]()
	case reflect.Float64:
		return reflect.TypeFor[float64]()
	case reflect.String:
		return reflect.TypeFor[string]()
	}
	return nil
}

func canonicalTypes(t reflect.Type) []reflect.Type {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		elem := t.Elem()
		if elem.Kind() == reflect.Uint8 {
			return []reflect.Type{bytesType, slicesAny}
		}
		if ce := canonicalScalar(elem); ce != nil {
			return []reflect.Type{reflect.SliceOf(ce), slicesAny}
		}
		return []reflect.Type{slicesAny}
	case reflect.Map:
		if t.Key().Kind() == reflect.String {
			return []reflect.Type{mapAny}
		}
		return nil
	}
	if ct := canonicalScalar(t); ct != nil {
		return []reflect.Type{ct}
	}
	return nil
}
