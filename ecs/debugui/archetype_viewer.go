package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

const (
	columnArchetypeID = iota
	columnComponents
	columnComponentCount
	columnEntityCount
)

// ArchetypeViewer is a sortable table of archetypes. Clicking a row selects
// the archetype listed by the EntityList window.
type ArchetypeViewer struct {
	rows          []ecs.ArchetypeStats
	sortColumn    int
	sortAscending bool
	selected      *uint32
}

func NewArchetypeViewer() ArchetypeViewer {
	return ArchetypeViewer{sortColumn: columnEntityCount}
}

// Selected returns the archetype picked in the table.
func (av *ArchetypeViewer) Selected() (uint32, bool) {
	if av.selected == nil {
		return 0, false
	}
	return *av.selected, true
}

func (av *ArchetypeViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.rows = storage.CollectStats().ArchetypeBreakdown
	sortArchetypeRows(av.rows, av.sortColumn, av.sortAscending)

	maxEntityCount := 0
	for _, arch := range av.rows {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortArchetypeRows(av.rows, av.sortColumn, av.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == arch.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := arch.ID
				av.selected = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}

// sortArchetypeRows orders rows by column. Ties fall back to the archetype ID
// so the table does not flicker between frames.
func sortArchetypeRows(rows []ecs.ArchetypeStats, column int, ascending bool) {
	slices.SortFunc(rows, func(a, b ecs.ArchetypeStats) int {
		var c int
		switch column {
		case columnArchetypeID:
			c = cmp.Compare(a.ID, b.ID)
		case columnComponents:
			c = strings.Compare(strings.Join(a.ComponentTypes, ","), strings.Join(b.ComponentTypes, ","))
		case columnComponentCount:
			c = cmp.Compare(len(a.ComponentTypes), len(b.ComponentTypes))
		default:
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if !ascending {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})
}
