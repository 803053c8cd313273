package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Every Storage
// owns one, so independent worlds never share component columns.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component. Spawning an unregistered
// type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether t has a storage factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const genericBlockSize = 64

// genericComponentStorage keeps values of T in separately allocated
// fixed-size blocks, so pointers handed out by Get stay valid while the column
// grows. Compact moves values and invalidates them. Freed slots are reused
// before new ones are appended.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    [][genericBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func (cs *genericComponentStorage[T]) locate(index int) (block, slot int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	block, slot = index/genericBlockSize, index%genericBlockSize
	return block, slot, block < len(cs.blocks)
}

// Append stores item (a T or *T) and returns its slot, or -1 on a type mismatch.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, [genericBlockSize]bool{})
		}
	}

	block, slot, _ := cs.locate(index)
	cs.blocks[block][slot] = value
	cs.filled[block][slot] = true
	cs.live++
	return index
}

// Get returns a *T for a filled slot and nil otherwise.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slot, ok := cs.locate(index)
	if !ok || !cs.filled[block][slot] {
		return nil
	}
	return &cs.blocks[block][slot]
}

// Delete zeroes the slot and queues it for reuse. Deleting an empty slot does nothing.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slot, ok := cs.locate(index)
	if !ok || !cs.filled[block][slot] {
		return
	}

	var zero T
	cs.blocks[block][slot] = zero
	cs.filled[block][slot] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slot, ok := cs.locate(index)
	return ok && cs.filled[block][slot]
}

// Len returns the number of filled slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

// Compact packs the filled slots to the front and returns old -> new indices.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	moved := make(map[int]int, cs.live)
	if cs.live == 0 {
		cs.blocks = []*[genericBlockSize]T{new([genericBlockSize]T)}
		cs.filled = make([][genericBlockSize]bool, 1)
		cs.freeSlots = nil
		cs.nextIndex = 0
		return moved
	}

	blockCount := (cs.live + genericBlockSize - 1) / genericBlockSize
	blocks := make([]*[genericBlockSize]T, blockCount)
	for i := range blocks {
		blocks[i] = new([genericBlockSize]T)
	}
	filled := make([][genericBlockSize]bool, blockCount)

	write := 0
	for read := range cs.Iter() {
		rb, rs, _ := cs.locate(read)
		wb, ws := write/genericBlockSize, write%genericBlockSize
		blocks[wb][ws] = cs.blocks[rb][rs]
		filled[wb][ws] = true
		moved[read] = write
		write++
	}

	cs.blocks = blocks
	cs.filled = filled
	cs.freeSlots = nil
	cs.nextIndex = write
	return moved
}

// Iter yields filled slot indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block, slot, ok := cs.locate(i)
			if !ok || !cs.filled[block][slot] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
