package nbt

import (
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Objects is the native form of a SerializableArray tag. It is distinct
// from []any, which converts to a List.
type Objects []any

func registerBuiltinConverters(c *Converters) {
	mustRegisterConverter(c, VariantByte, scalarConverter[int8, *ByteTag]{NewByte, (*ByteTag).Get})
	mustRegisterConverter(c, VariantShort, scalarConverter[int16, *ShortTag]{NewShort, (*ShortTag).Get})
	mustRegisterConverter(c, VariantInt, scalarConverter[int32, *IntTag]{NewInt, (*IntTag).Get})
	mustRegisterConverter(c, VariantLong, scalarConverter[int64, *LongTag]{NewLong, (*LongTag).Get})
	mustRegisterConverter(c, VariantFloat, scalarConverter[float32, *FloatTag]{NewFloat, (*FloatTag).Get})
	mustRegisterConverter(c, VariantDouble, scalarConverter[float64, *DoubleTag]{NewDouble, (*DoubleTag).Get})
	mustRegisterConverter(c, VariantString, scalarConverter[string, *StringTag]{NewString, (*StringTag).Get})

	mustRegisterConverter(c, VariantByteArray, scalarConverter[[]byte, *ByteArrayTag]{NewByteArray, (*ByteArrayTag).Values})
	mustRegisterConverter(c, VariantShortArray, scalarConverter[[]int16, *ShortArrayTag]{NewShortArray, (*ShortArrayTag).Values})
	mustRegisterConverter(c, VariantIntArray, scalarConverter[[]int32, *IntArrayTag]{NewIntArray, (*IntArrayTag).Values})
	mustRegisterConverter(c, VariantLongArray, scalarConverter[[]int64, *LongArrayTag]{NewLongArray, (*LongArrayTag).Values})
	mustRegisterConverter(c, VariantFloatArray, scalarConverter[[]float32, *FloatArrayTag]{NewFloatArray, (*FloatArrayTag).Values})
	mustRegisterConverter(c, VariantDoubleArray, scalarConverter[[]float64, *DoubleArrayTag]{NewDoubleArray, (*DoubleArrayTag).Values})
	mustRegisterConverter(c, VariantStringArray, scalarConverter[[]string, *StringArrayTag]{NewStringArray, (*StringArrayTag).Values})

	mustRegisterConverter(c, VariantList, listConverter{})
	mustRegisterConverter(c, VariantCompound, compoundConverter{})
	mustRegisterConverter(c, VariantSerializableArray, objectsConverter{})
	mustRegisterConverter(c, VariantSerializable, opaqueConverter{})
}

// nativeTypes maps each built-in converter to its exact native type.
var nativeTypes = map[Variant]reflect.Type{
	VariantByte:              reflect.TypeFor[int8](),
	VariantShort:             reflect.TypeFor[int16](),
	VariantInt:               reflect.TypeFor[int32](),
	VariantLong:              reflect.TypeFor[int64](),
	VariantFloat:             reflect.TypeFor[float32](),
	VariantDouble:            reflect.TypeFor[float64](),
	VariantString:            reflect.TypeFor[string](),
	VariantByteArray:         bytesType,
	VariantShortArray:        reflect.TypeFor[[]int16](),
	VariantIntArray:          reflect.TypeFor[[]int32](),
	VariantLongArray:         reflect.TypeFor[[]int64](),
	VariantFloatArray:        reflect.TypeFor[[]float32](),
	VariantDoubleArray:       reflect.TypeFor[[]float64](),
	VariantStringArray:       reflect.TypeFor[[]string](),
	VariantList:              slicesAny,
	VariantCompound:          mapAny,
	VariantSerializableArray: reflect.TypeFor[Objects](),
	VariantSerializable:      anyType,
}

func mustRegisterConverter(c *Converters, variant Variant, conv Converter) {
	if err := c.Register(variant, nativeTypes[variant], conv); err != nil {
		panic("nbt: " + err.Error())
	}
}

// scalarConverter maps a single-valued tag type G to its native type T.
type scalarConverter[T any, G Tag] struct {
	newTag func(name string, v T) G
	get    func(G) T
}

func (s scalarConverter[T, G]) ToValue(_ *Converters, t Tag) (any, error) {
	g, ok := t.(G)
	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), reflect.TypeFor[T](), nil)
	}
	return s.get(g), nil
}

func (s scalarConverter[T, G]) ToTag(_ *Converters, name string, v any) (Tag, error) {
	x, err := coerce[T](v)
	if err != nil {
		return nil, err
	}
	return s.newTag(name, x), nil
}

type listConverter struct{}

func (listConverter) ToValue(c *Converters, t Tag) (any, error) {
	l, ok := t.(*ListTag)
	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), slicesAny, nil)
	}
	out := make([]any, 0, l.Len())
	for _, e := range l.value {
		v, err := c.ToValue(e)
		if err != nil {
			return nil, newConversionError(ErrNoConverter, VariantList, nil, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (listConverter) ToTag(c *Converters, name string, v any) (Tag, error) {
	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, newConversionError(ErrNoConverter, VariantList, reflect.TypeOf(v), nil)
	}
	if rv.Len() == 0 {
		return nil, newConversionError(ErrEmptyList, VariantList, reflect.TypeOf(v), nil)
	}

	tags := make([]Tag, 0, rv.Len())
	for i := range rv.Len() {
		e, err := c.ToTag("", rv.Index(i).Interface())
		if err != nil {
			return nil, newConversionError(ErrNoConverter, VariantList, reflect.TypeOf(v), err)
		}
		if e == nil {
			return nil, newConversionError(ErrNoConverter, VariantList, reflect.TypeOf(v), ErrNilTag)
		}
		tags = append(tags, e)
	}

	l, err := NewListOf(name, tags...)
	if err != nil {
		return nil, newConversionError(ErrHeterogeneousList, VariantList, reflect.TypeOf(v), err)
	}
	return l, nil
}

type compoundConverter struct{}

func (compoundConverter) ToValue(c *Converters, t Tag) (any, error) {
	comp, ok := t.(*CompoundTag)
	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), mapAny, nil)
	}
	out := make(map[string]any, comp.Len())
	for k, child := range comp.All() {
		v, err := c.ToValue(child)
		if err != nil {
			return nil, newConversionError(ErrNoConverter, VariantCompound, nil, err)
		}
		out[k] = v
	}
	return out, nil
}

// ToTag converts a string-keyed map. Children are added in key order;
// nil values are skipped.
func (compoundConverter) ToTag(c *Converters, name string, v any) (Tag, error) {
	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, newConversionError(ErrNoConverter, VariantCompound, reflect.TypeOf(v), nil)
	}

	keys := make([]string, 0, rv.Len())
	values := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		keys = append(keys, k)
		values[k] = iter.Value()
	}
	slices.Sort(keys)

	comp := NewCompound(name)
	for _, k := range keys {
		child, err := c.ToTag(k, values[k].Interface())
		if err != nil {
			return nil, newConversionError(ErrNoConverter, VariantCompound, reflect.TypeOf(v), err)
		}
		comp.Put(child)
	}
	return comp, nil
}

type objectsConverter struct{}

func (objectsConverter) ToValue(_ *Converters, t Tag) (any, error) {
	a, ok := t.(*SerializableArrayTag)
	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), reflect.TypeFor[Objects](), nil)
	}
	return Objects(a.Values()), nil
}

func (objectsConverter) ToTag(_ *Converters, name string, v any) (Tag, error) {
	values, err := coerce[[]any](v)
	if err != nil {
		return nil, err
	}
	return NewSerializableArray(name, values), nil
}

type opaqueConverter struct{}

func (opaqueConverter) ToValue(_ *Converters, t Tag) (any, error) {
	return t.Value(), nil
}

func (opaqueConverter) ToTag(_ *Converters, name string, v any) (Tag, error) {
	return NewSerializable(name, v), nil
}

// indirect follows pointers until a non-pointer or nil pointer is reached.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

// coerce converts v to T, following pointers and converting between types
// of the same kind family element by element.
func coerce[T any](v any) (T, error) {
	if x, ok := v.(T); ok {
		return x, nil
	}
	var zero T
	target := reflect.TypeFor[T]()
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() || rv.Kind() == reflect.Pointer {
		return zero, newConversionError(ErrNoConverter, "", target, ErrNilTag)
	}
	out, err := convertValue(rv, target)
	if err != nil {
		return zero, err
	}
	return out.Interface().(T), nil
}

// convertValue converts rv to target. Numeric conversions that do not fit
// target fail with ErrValueTooLarge.
func convertValue(rv reflect.Value, target reflect.Type) (reflect.Value, error) {
	if target.Kind() == reflect.Interface {
		if rv.Type().AssignableTo(target) {
			return rv, nil
		}
		return reflect.Value{}, newConversionError(ErrNoConverter, "", target, nil)
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, newConversionError(ErrNoConverter, "", target, ErrNilTag)
		}
		rv = rv.Elem()
	}
	if rv.Type() == target {
		return rv, nil
	}

	if target.Kind() == reflect.Slice {
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return reflect.Value{}, newConversionError(ErrNoConverter, "", target, nil)
		}
		out := reflect.MakeSlice(target, rv.Len(), rv.Len())
		for i := range rv.Len() {
			e, err := convertValue(rv.Index(i), target.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			out.Index(i).Set(e)
		}
		return out, nil
	}

	if kindFamily(rv.Kind()) != kindFamily(target.Kind()) || kindFamily(target.Kind()) == 0 {
		return reflect.Value{}, newConversionError(ErrNoConverter, "", target, fmt.Errorf("from %s", rv.Type()))
	}
	if overflows(rv, target) {
		return reflect.Value{}, newConversionError(ErrValueTooLarge, "", target, fmt.Errorf("%v out of range", rv.Interface()))
	}
	return rv.Convert(target), nil
}

// overflows reports whether the numeric value rv cannot be represented
// by target.
func overflows(rv reflect.Value, target reflect.Type) bool {
	switch {
	case rv.CanInt() && isSigned(target):
		return target.OverflowInt(rv.Int())
	case rv.CanInt() && isUnsigned(target):
		return rv.Int() < 0 || target.OverflowUint(uint64(rv.Int()))
	case rv.CanUint() && isSigned(target):
		return rv.Uint() > math.MaxInt64 || target.OverflowInt(int64(rv.Uint()))
	case rv.CanUint() && isUnsigned(target):
		return target.OverflowUint(rv.Uint())
	case rv.CanFloat() && target.Kind() == reflect.Float32:
		return target.OverflowFloat(rv.Float())
	}
	return false
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// kindFamily groups kinds that convert without changing representation
// class. Zero means the kind does not convert.
func kindFamily(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 1
	case reflect.Float32, reflect.Float64:
		return 2
	case reflect.String:
		return 3
	case reflect.Bool:
		return 4
	}
	return 0
}
