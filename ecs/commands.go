package ecs

import "reflect"

// Commands buffers structural changes made by systems. They are applied by
// Flush after the whole pass so no query sees a half-mutated storage.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion. Queuing the same entity twice is harmless.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Pending returns the number of queued commands.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies deletes, removes, adds, spawns and defers in that order and
// resets the buffer. Removes and adds aimed at an entity deleted in the same
// flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]struct{}, len(c.deletes))
	for _, id := range c.deletes {
		if _, done := deleted[id]; done {
			continue
		}
		storage.Delete(id)
		deleted[id] = struct{}{}
	}

	for _, cmd := range c.removes {
		if _, gone := deleted[cmd.entity]; !gone {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if _, gone := deleted[cmd.entity]; !gone {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	// Defers may queue more commands; take the current batch first.
	defers := c.defers
	c.defers = nil

	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]

	for _, fn := range defers {
		fn()
	}
}
