package nbt

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Factory creates an empty tag of one variant, ready for ReadPayload.
type Factory func(name string) Tag

// firstCustomID is where NextID starts scanning for unused type-ids.
const firstCustomID = 80

// Entry is a single (id, variant) association in a Registry snapshot.
type Entry struct {
	ID      uint8
	Variant Variant
}

type registration struct {
	variant Variant
	factory Factory
}

// Registry is a bidirectional mapping between wire type-ids and tag variants.
//
// Registration is expected to complete before the registry is used for
// decoding; the registry is nonetheless safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	byID      map[uint8]registration
	byVariant map[Variant]uint8
	cursor    int
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry, initialized with the
// built-in variants on first use.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a variant to the process-wide registry.
func Register(id uint8, f Factory) error {
	return DefaultRegistry().Register(id, f)
}

// NewRegistry returns a registry holding every built-in variant.
// It panics if two built-ins collide, which is a programming error.
func NewRegistry() *Registry {
	r := newEmptyRegistry()
	registerBuiltins(r)
	return r
}

func newEmptyRegistry() *Registry {
	return &Registry{
		byID:      make(map[uint8]registration),
		byVariant: make(map[Variant]uint8),
		cursor:    firstCustomID,
	}
}

func registerBuiltins(r *Registry) {
	r.MustRegister(1, func(name string) Tag { return NewByte(name, 0) })
	r.MustRegister(2, func(name string) Tag { return NewShort(name, 0) })
	r.MustRegister(3, func(name string) Tag { return NewInt(name, 0) })
	r.MustRegister(4, func(name string) Tag { return NewLong(name, 0) })
	r.MustRegister(5, func(name string) Tag { return NewFloat(name, 0) })
	r.MustRegister(6, func(name string) Tag { return NewDouble(name, 0) })
	r.MustRegister(7, func(name string) Tag { return NewByteArray(name, nil) })
	r.MustRegister(8, func(name string) Tag { return NewString(name, "") })
	r.MustRegister(9, func(name string) Tag { return NewList(name, VariantEnd) })
	r.MustRegister(10, func(name string) Tag { return NewCompound(name) })
	r.MustRegister(11, func(name string) Tag { return NewIntArray(name, nil) })
	r.MustRegister(12, func(name string) Tag { return NewLongArray(name, nil) })
	r.MustRegister(60, func(name string) Tag { return NewDoubleArray(name, nil) })
	r.MustRegister(61, func(name string) Tag { return NewFloatArray(name, nil) })
	r.MustRegister(63, func(name string) Tag { return NewSerializableArray(name, nil) })
	r.MustRegister(64, func(name string) Tag { return NewSerializable(name, nil) })
	r.MustRegister(65, func(name string) Tag { return NewShortArray(name, nil) })
	r.MustRegister(66, func(name string) Tag { return NewStringArray(name, nil) })
}

// Register maps id to the variant produced by f.
// It fails with ErrNilFactory if f is nil or returns a nil tag, and with
// ErrVariantCollision if id or the variant is already registered, or if id
// is 0, which is reserved for the End tag.
func (r *Registry) Register(id uint8, f Factory) error {
	if f == nil {
		return newRegistryError(ErrNilFactory, int(id), "")
	}
	sample := f("")
	if sample == nil {
		return newRegistryError(ErrNilFactory, int(id), "")
	}
	variant := sample.Variant()

	r.mu.Lock()
	defer r.mu.Unlock()

	if id == 0 || variant == VariantEnd {
		return newRegistryError(ErrVariantCollision, int(id), variant)
	}
	if _, ok := r.byID[id]; ok {
		return newRegistryError(ErrVariantCollision, int(id), r.byID[id].variant)
	}
	if existing, ok := r.byVariant[variant]; ok {
		return newRegistryError(ErrVariantCollision, int(existing), variant)
	}

	r.byID[id] = registration{variant: variant, factory: f}
	r.byVariant[variant] = id

	emitRegistered(context.Background(), id, variant)
	return nil
}

// MustRegister is like Register but panics on collision.
func (r *Registry) MustRegister(id uint8, f Factory) {
	if err := r.Register(id, f); err != nil {
		panic("nbt: " + err.Error())
	}
}

// Lookup returns the factory registered for id.
func (r *Registry) Lookup(id uint8) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byID[id]
	return reg.factory, ok
}

// New instantiates an empty tag of the variant registered for id.
// It fails with ErrUnknownTypeID if id is not registered and with
// ErrNilFactory if the factory returns a nil tag.
func (r *Registry) New(id uint8, name string) (Tag, error) {
	r.mu.RLock()
	reg, ok := r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return nil, newRegistryError(ErrUnknownTypeID, int(id), "")
	}
	t := reg.factory(name)
	if t == nil {
		return nil, newRegistryError(ErrNilFactory, int(id), reg.variant)
	}
	return t, nil
}

// ID returns the type-id registered for variant. VariantEnd maps to 0.
func (r *Registry) ID(variant Variant) (uint8, bool) {
	if variant == VariantEnd || variant == "" {
		return 0, true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byVariant[variant]
	return id, ok
}

// NextID returns an unused type-id, scanning upward from an internal cursor.
// It fails with ErrIDSpaceExhausted once every id above the cursor is taken.
func (r *Registry) NextID() (uint8, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := r.cursor; id <= math.MaxUint8; id++ {
		if _, ok := r.byID[uint8(id)]; !ok {
			r.cursor = id + 1
			return uint8(id), nil
		}
	}
	r.cursor = math.MaxUint8 + 1
	return 0, newRegistryError(ErrIDSpaceExhausted, -1, "")
}

// Entries returns a snapshot of every registration ordered by id.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.byID))
	for id, reg := range r.byID {
		entries = append(entries, Entry{ID: id, Variant: reg.variant})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}

// Reset restores the process-wide registry to the built-in variants.
// This is primarily useful for test isolation.
func Reset() {
	r := DefaultRegistry()
	fresh := NewRegistry()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = fresh.byID
	r.byVariant = fresh.byVariant
	r.cursor = fresh.cursor
}
