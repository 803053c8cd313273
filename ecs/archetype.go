package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly the same set of component
// types. Column i holds the values for types[i]; a slot index addresses the
// same entity in every column.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates the columns for the sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) column(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// Spawn appends one value to every column and returns the shared slot index.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		if idx := a.column(compType); idx >= 0 {
			slot = a.storages[idx].Append(comp)
		}
	}

	return uint32(slot)
}

// GetComponent returns a pointer to the component, or nil when the archetype
// lacks the type or the slot is empty.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete empties the slot in every column and kills any EntityRef to it.
// Slot indices of other entities do not change.
func (a *Archetype) Delete(entityIndex uint32) {
	entityId := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(entityId); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(entityId)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

// Alive reports whether the slot currently holds an entity.
func (a *Archetype) Alive(entityIndex uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(entityIndex))
}

// HasComponent reports whether compType is one of the archetype's columns.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.column(compType) >= 0
}

// ID returns the archetype hash.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact closes the holes left by deletes. Live EntityRefs are rewritten to
// the new slots; refs whose target was collected are dropped.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	moved := a.storages[0].Compact()
	for _, storage := range a.storages[1:] {
		storage.Compact()
	}

	survivors := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range moved {
		weakPtr, ok := a.refs.Get(NewEntityId(a.id, uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := NewEntityId(a.id, uint32(newIdx))
			ref.Id = newId
			survivors[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range survivors {
		a.refs.Put(id, weakPtr)
	}
}

// Iter yields the ids of live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
