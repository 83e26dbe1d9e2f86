// Package view keeps every rendered region consistent with the same
// snapshot of the collections after each mutation or navigation event.
package view

import (
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// Region is one independently re-renderable area of the UI.
type Region int

const (
	MonthGrid Region = iota
	MonthProgress
	DayPanel
	DayProgress
	Modal
)

// AllRegions lists the regions in render order.
func AllRegions() []Region {
	return []Region{MonthGrid, MonthProgress, DayPanel, DayProgress, Modal}
}

func (r Region) String() string {
	switch r {
	case MonthGrid:
		return "month-grid"
	case MonthProgress:
		return "month-progress"
	case DayPanel:
		return "day-panel"
	case DayProgress:
		return "day-progress"
	case Modal:
		return "modal"
	}
	return "unknown"
}

// Phase is the render state of a region.
type Phase int

const (
	Idle Phase = iota
	Rendering
)

// Scope identifies which aggregate crossed into full completion.
type Scope int

const (
	ScopeDay Scope = iota
	ScopeMonth
)

// Snapshot carries the computed view data handed to the renderer. It is
// pure data: ids, labels and flags, never markup.
type Snapshot struct {
	Month      time.Time // first day of the viewed month
	Grid       []aggregate.Cell
	MonthStats aggregate.MonthStats

	Day      record.Day
	DayItems []aggregate.Item
	DayStats aggregate.DayStats

	ModalOpen  bool
	ModalDay   record.Day
	ModalItems []aggregate.Item

	EditingID string
}

// Renderer redraws one region from a snapshot. Implementations must not
// mutate the collections.
type Renderer interface {
	Render(region Region, snap Snapshot)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(region Region, snap Snapshot)

func (f RenderFunc) Render(region Region, snap Snapshot) { f(region, snap) }

// Celebrator receives the one-shot side effect when a scope reaches full
// completion. Purely cosmetic, must not block.
type Celebrator func(scope Scope)

// Source provides the current collections. The record store satisfies it.
type Source interface {
	Notes() []record.Note
	Tasks() []record.Task
}
