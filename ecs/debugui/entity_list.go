package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// EntityList lists the entities of the archetype picked in the
// ArchetypeViewer and prints the components of the selected one.
type EntityList struct {
	limit    int
	selected ecs.EntityId
}

func NewEntityList(limit int) EntityList {
	return EntityList{limit: limit}
}

func (el *EntityList) Render(storage *ecs.Storage, archetypeId *uint32) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if archetypeId == nil {
		imgui.Text("Select an archetype")
		return
	}

	archetype := findArchetype(storage, *archetypeId)
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Archetype 0x%X is gone", *archetypeId))
		return
	}

	ids := listEntities(archetype, el.limit)
	imgui.Text(fmt.Sprintf("Showing %d of %d", len(ids), archetype.Len()))
	for _, id := range ids {
		if imgui.SelectableBoolV(fmt.Sprintf("%d", id), el.selected == id, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			el.selected = id
		}
	}

	if el.selected == 0 || !storage.Alive(el.selected) {
		return
	}

	imgui.Separator()
	for _, line := range describeEntity(storage, el.selected) {
		imgui.BulletText(line)
	}
}

func findArchetype(storage *ecs.Storage, id uint32) *ecs.Archetype {
	for _, archetype := range storage.GetArchetypes() {
		if archetype.ID() == id {
			return archetype
		}
	}
	return nil
}

func listEntities(archetype *ecs.Archetype, limit int) []ecs.EntityId {
	var ids []ecs.EntityId
	for id := range archetype.Iter() {
		if limit > 0 && len(ids) == limit {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

// describeEntity formats every component of id as "Type: {Field:value ...}".
func describeEntity(storage *ecs.Storage, id ecs.EntityId) []string {
	var archetype *ecs.Archetype
	if archetype = findArchetype(storage, id.ArchetypeId()); archetype == nil {
		return nil
	}

	lines := make([]string, 0, len(archetype.Types()))
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		value := reflect.Indirect(reflect.ValueOf(component)).Interface()
		lines = append(lines, fmt.Sprintf("%s: %+v", compType, value))
	}
	return lines
}
