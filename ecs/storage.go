package ecs

import (
	"cmp"
	"reflect"
	"slices"
	"sort"
	"unsafe"
	"weak"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage for the registry's component types.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id.Index()) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Alive() {
		return false
	}

	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly these component types, if any.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	return s.archetypes[hashTypesToUint32(extractComponentTypes(components))]
}

// GetArchetypeByTypes is GetArchetype keyed by reflect.Type.
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

// GetArchetypes returns all archetypes ordered by id, so iteration order is
// stable between runs with the same component sets.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		out = append(out, archetype)
	}
	slices.SortFunc(out, func(a, b *Archetype) int {
		return cmp.Compare(a.id, b.id)
	})
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return archetype
}

// Spawn creates an entity from the given component values.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.Spawn(components))
}

// Delete removes the entity. Unknown or already deleted ids are ignored.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.Delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index())
}

// move re-homes an entity into the archetype for newTypes, copying the
// components it keeps and taking extra from the caller. EntityRefs follow.
func (s *Storage) move(id EntityId, newTypes []reflect.Type, extra any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]
	weakPtr, hasRef := oldArchetype.refs.Get(id)

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		return 0
	}

	var extraType reflect.Type
	if extra != nil {
		extraType = reflect.TypeOf(extra)
		if extraType.Kind() == reflect.Ptr {
			extraType = extraType.Elem()
		}
	}

	newArchetype := s.archetypeFor(newTypes)
	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == extraType {
			components = append(components, extra)
			continue
		}
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	newId := NewEntityId(newArchetype.id, newArchetype.Spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
		oldArchetype.refs.Del(id)
	}

	oldArchetype.Delete(id.Index())
	return newId
}

// AddComponent attaches component to the entity and returns its new id.
// Adding a type the entity already has overwrites the value in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Alive(id.Index()) {
		return 0
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if idx := oldArchetype.column(compType); idx >= 0 {
		dst := reflect.ValueOf(oldArchetype.storages[idx].Get(int(id.Index()))).Elem()
		dst.Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	return s.move(id, newTypes, component)
}

// RemoveComponent detaches compType and returns the entity's new id. Removing
// the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Alive(id.Index()) {
		return 0
	}
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	return s.move(id, newTypes, nil)
}

// GetComponent returns a pointer to the entity's component of compType, or nil.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype has compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.HasComponent(compType)
}

// Compact compacts every archetype. Raw EntityIds held across this call may
// be stale afterwards; EntityRefs are kept up to date.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		archetype.Compact()
	}
}

// AddSingleton stores value as the singleton for its type, replacing any
// previous value in place so existing Singleton handles keep working.
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	if entry, ok := s.singletons[typ]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *out at the singleton of type T. out must be a **T.
func (s *Storage) ReadSingleton(out any) bool {
	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton expects a pointer to a pointer")
	}

	entry, ok := s.singletons[target.Elem().Type().Elem()]
	if !ok {
		return false
	}
	target.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the singleton of the given type.
func (s *Storage) RemoveSingleton(typ reflect.Type) {
	delete(s.singletons, typ)
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// extractComponentTypes returns the sorted value types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of sorted types.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's *T, or nil when it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
