package nbt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("nbt")
}

// structPlan describes how a struct type maps onto a Compound.
type structPlan struct {
	typ    reflect.Type
	fields []structField
}

// structField describes one struct field stored as a Compound child.
type structField struct {
	index []int  // reflect.Value.FieldByIndex access path
	name  string // child tag name
	field string // Go field name for error messages
}

var (
	structPlans   = make(map[reflect.Type]*structPlan)
	structPlansMu sync.RWMutex
)

// RegisterStruct registers a converter between struct type T and Compound
// tags. Exported fields become children named by their `nbt` struct tag,
// or by the field name; `nbt:"-"` skips a field. Struct types reachable
// from T's fields are registered too unless c already converts them.
//
// Nil pointers, nil slices and nil maps are omitted when encoding, and
// missing children leave fields at their zero value when decoding.
func RegisterStruct[T any](c *Converters) error {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return newConversionError(ErrNoConverter, VariantCompound, typ, errors.New("not a struct type"))
	}
	plan := planFor(typ, func() sentinel.Metadata { return sentinel.Scan[T]() })
	if err := c.RegisterType(typ, &structConverter{plan: plan}); err != nil {
		return err
	}
	registerNestedStructs(c, plan)
	return nil
}

// DecodeStruct decodes comp into a new T using the converter registered
// with RegisterStruct.
func DecodeStruct[T any](c *Converters, comp *CompoundTag) (T, error) {
	var out T
	typ := reflect.TypeFor[T]()
	s, ok := c.structConverter(typ)
	if !ok {
		return out, newConversionError(ErrNoConverter, VariantCompound, typ, nil)
	}
	if comp == nil {
		return out, newConversionError(ErrNoConverter, VariantCompound, typ, ErrNilTag)
	}
	if err := s.decode(c, comp, reflect.ValueOf(&out).Elem()); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Converters) structConverter(typ reflect.Type) (*structConverter, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byType[typ].(*structConverter)
	return s, ok
}

func (c *Converters) hasType(typ reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byType[typ]
	return ok
}

// planFor returns the cached plan for typ, building it from scan on first use.
func planFor(typ reflect.Type, scan func() sentinel.Metadata) *structPlan {
	structPlansMu.RLock()
	if plan, ok := structPlans[typ]; ok {
		structPlansMu.RUnlock()
		return plan
	}
	structPlansMu.RUnlock()

	structPlansMu.Lock()
	defer structPlansMu.Unlock()

	if plan, ok := structPlans[typ]; ok {
		return plan
	}
	plan := buildStructPlan(typ, scan())
	structPlans[typ] = plan
	return plan
}

func buildStructPlan(typ reflect.Type, meta sentinel.Metadata) *structPlan {
	plan := &structPlan{typ: typ}
	for _, field := range meta.Fields {
		sf := typ.FieldByIndex(field.Index)
		if !sf.IsExported() {
			continue
		}
		tag := field.Tags["nbt"]
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		plan.fields = append(plan.fields, structField{
			index: append([]int{}, field.Index...),
			name:  name,
			field: field.Name,
		})
	}
	return plan
}

// scanNestedType scans a struct type reached through a field. Types already
// scanned by sentinel are reused.
func scanNestedType(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if v, ok := sf.Tag.Lookup("nbt"); ok {
			fm.Tags["nbt"] = v
		}
		meta.Fields = append(meta.Fields, fm)
	}
	return meta
}

func registerNestedStructs(c *Converters, plan *structPlan) {
	for _, f := range plan.fields {
		st := structElem(plan.typ.FieldByIndex(f.index).Type)
		if st == nil || c.hasType(st) {
			continue
		}
		nested := planFor(st, func() sentinel.Metadata { return scanNestedType(st) })
		if err := c.RegisterType(st, &structConverter{plan: nested}); err != nil {
			continue
		}
		registerNestedStructs(c, nested)
	}
}

// structElem returns the struct type held by t through pointers, slices,
// arrays and map values, or nil.
func structElem(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		case reflect.Struct:
			return t
		default:
			return nil
		}
	}
}

// structConverter converts between one struct type and Compound tags.
type structConverter struct {
	plan *structPlan
}

func (s *structConverter) ToValue(c *Converters, t Tag) (any, error) {
	comp, ok := t.(*CompoundTag)
	if !ok {
		return nil, newConversionError(ErrNoConverter, t.Variant(), s.plan.typ, nil)
	}
	rv := reflect.New(s.plan.typ).Elem()
	if err := s.decode(c, comp, rv); err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

func (s *structConverter) ToTag(c *Converters, name string, v any) (Tag, error) {
	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Pointer {
		return nil, nil
	}

	comp := NewCompound(name)
	for _, f := range s.plan.fields {
		fv := rv.FieldByIndex(f.index)
		if isNil(fv) {
			continue
		}
		child, err := c.ToTag(f.name, fv.Interface())
		if errors.Is(err, ErrEmptyList) {
			continue
		}
		if err != nil {
			return nil, newConversionError(ErrNoConverter, VariantCompound, s.plan.typ, fmt.Errorf("field %s: %w", f.field, err))
		}
		comp.Put(child)
	}
	return comp, nil
}

func (s *structConverter) decode(c *Converters, comp *CompoundTag, rv reflect.Value) error {
	for _, f := range s.plan.fields {
		child := comp.Get(f.name)
		if child == nil {
			continue
		}
		if err := assignTag(c, rv.FieldByIndex(f.index), child); err != nil {
			return newConversionError(ErrNoConverter, VariantCompound, s.plan.typ, fmt.Errorf("field %s: %w", f.field, err))
		}
	}
	return nil
}

// assignTag stores t into dst, recursing through pointers, registered
// structs, slices and string-keyed maps.
func assignTag(c *Converters, dst reflect.Value, t Tag) error {
	switch dst.Kind() {
	case reflect.Pointer:
		elem := reflect.New(dst.Type().Elem())
		if err := assignTag(c, elem.Elem(), t); err != nil {
			return err
		}
		dst.Set(elem)
		return nil
	case reflect.Struct:
		if comp, ok := t.(*CompoundTag); ok {
			if s, ok := c.structConverter(dst.Type()); ok {
				return s.decode(c, comp, dst)
			}
		}
	case reflect.Slice:
		if l, ok := t.(*ListTag); ok {
			out := reflect.MakeSlice(dst.Type(), l.Len(), l.Len())
			for i, e := range l.All() {
				if err := assignTag(c, out.Index(i), e); err != nil {
					return err
				}
			}
			dst.Set(out)
			return nil
		}
	case reflect.Map:
		if comp, ok := t.(*CompoundTag); ok && dst.Type().Key().Kind() == reflect.String {
			out := reflect.MakeMapWithSize(dst.Type(), comp.Len())
			for k, child := range comp.All() {
				ev := reflect.New(dst.Type().Elem()).Elem()
				if err := assignTag(c, ev, child); err != nil {
					return err
				}
				out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), ev)
			}
			dst.Set(out)
			return nil
		}
	}

	v, err := c.ToValue(t)
	if err != nil {
		return err
	}
	if v == nil {
		dst.SetZero()
		return nil
	}
	out, err := convertValue(reflect.ValueOf(v), dst.Type())
	if err != nil {
		return err
	}
	dst.Set(out)
	return nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
