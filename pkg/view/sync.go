package view

import (
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
)

// Sync orchestrates scoped re-rendering. Navigation redraws only the
// regions that depend on the changed scope; a mutation redraws all of
// them, since it can move both day and month aggregates at once.
type Sync struct {
	source    Source
	renderer  Renderer
	celebrate Celebrator
	now       func() time.Time

	month     time.Time // first of the viewed month
	day       record.Day
	modalDay  record.Day
	modalOpen bool
	editingID string

	phase map[Region]Phase

	// One-shot celebration latches. A latch holds the last scope value
	// that celebrated, so an already-100% region re-rendering stays
	// silent until the scope changes or drops below 100%.
	dayLatch   record.Day
	monthLatch string
}

// Option configures a Sync.
type Option func(*Sync)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sync) { s.now = now }
}

// WithCelebrator installs the completion side effect.
func WithCelebrator(fn Celebrator) Option {
	return func(s *Sync) { s.celebrate = fn }
}

// NewSync creates a Sync viewing today.
func NewSync(source Source, renderer Renderer, opts ...Option) *Sync {
	s := &Sync{
		source:    source,
		renderer:  renderer,
		celebrate: func(Scope) {},
		now:       time.Now,
		phase:     make(map[Region]Phase),
	}
	for _, opt := range opts {
		opt(s)
	}
	today := record.DayOf(s.now())
	s.day = today
	t := today.Time()
	s.month = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	return s
}

// Day returns the viewed day.
func (s *Sync) Day() record.Day { return s.day }

// Month returns the first day of the viewed month.
func (s *Sync) Month() time.Time { return s.month }

// EditingID returns the id of the task currently being edited, if any.
func (s *Sync) EditingID() string { return s.editingID }

// Phase reports the render state of a region.
func (s *Sync) Phase(r Region) Phase { return s.phase[r] }

// Refresh redraws every region from one fresh snapshot.
func (s *Sync) Refresh() {
	s.redraw(AllRegions()...)
}

// NextMonth advances the viewed month. Only the monthly regions redraw.
func (s *Sync) NextMonth() { s.shiftMonth(1) }

// PrevMonth rewinds the viewed month.
func (s *Sync) PrevMonth() { s.shiftMonth(-1) }

func (s *Sync) shiftMonth(by int) {
	s.month = s.month.AddDate(0, by, 0)
	s.redraw(MonthGrid, MonthProgress)
}

// NextDay advances the viewed day. Only the daily regions redraw.
func (s *Sync) NextDay() { s.GoToDay(s.day.AddDays(1)) }

// PrevDay rewinds the viewed day.
func (s *Sync) PrevDay() { s.GoToDay(s.day.AddDays(-1)) }

// GoToDay jumps the daily panel to the given day.
func (s *Sync) GoToDay(day record.Day) {
	s.day = day
	s.redraw(DayPanel, DayProgress)
}

// OpenModal shows the detail modal for a day.
func (s *Sync) OpenModal(day record.Day) {
	s.modalDay = day
	s.modalOpen = true
	s.redraw(Modal)
}

// CloseModal hides the detail modal.
func (s *Sync) CloseModal() {
	s.modalOpen = false
	s.redraw(Modal)
}

// StartEdit marks a task as being edited. Explicit view state, not a UI
// attribute.
func (s *Sync) StartEdit(id string) {
	s.editingID = id
	s.redraw(DayPanel)
}

// StopEdit clears the edit-in-progress marker.
func (s *Sync) StopEdit() {
	s.editingID = ""
	s.redraw(DayPanel)
}

// OnMutation is the store observer: any mutation redraws the monthly grid,
// monthly progress, daily panel and daily progress together, plus the
// modal when open. The changed days are accepted for interface symmetry;
// a full redraw of the dependent regions is always correct.
func (s *Sync) OnMutation(_ ...record.Day) {
	regions := []Region{MonthGrid, MonthProgress, DayPanel, DayProgress}
	if s.modalOpen {
		regions = append(regions, Modal)
	}
	s.redraw(regions...)
}

// redraw computes one snapshot and renders each requested region from it,
// so every region reflects the same state. Regions already mid-render are
// skipped rather than re-entered.
func (s *Sync) redraw(regions ...Region) {
	snap := s.snapshot()
	for _, region := range regions {
		if s.phase[region] == Rendering {
			continue
		}
		s.phase[region] = Rendering
		if s.renderer != nil {
			s.renderer.Render(region, snap)
		}
		s.phase[region] = Idle
	}
	s.checkCelebration(regions, snap)
}

func (s *Sync) snapshot() Snapshot {
	notes := s.source.Notes()
	tasks := s.source.Tasks()
	today := record.DayOf(s.now())

	snap := Snapshot{
		Month:      s.month,
		Grid:       aggregate.CalendarGrid(notes, tasks, s.month.Year(), s.month.Month(), today),
		MonthStats: aggregate.MonthStatsOn(tasks, s.month.Year(), s.month.Month(), today),
		Day:        s.day,
		DayItems:   aggregate.ItemsOnDay(notes, tasks, s.day),
		DayStats:   aggregate.DayStatsOn(tasks, s.day),
		EditingID:  s.editingID,
	}
	if s.modalOpen {
		snap.ModalOpen = true
		snap.ModalDay = s.modalDay
		snap.ModalItems = aggregate.ItemsOnDay(notes, tasks, s.modalDay)
	}
	return snap
}

func (s *Sync) checkCelebration(regions []Region, snap Snapshot) {
	for _, region := range regions {
		switch region {
		case DayProgress:
			full := snap.DayStats.TotalTasks > 0 && snap.DayStats.Percent == 100
			switch {
			case full && s.dayLatch != s.day:
				s.dayLatch = s.day
				s.celebrate(ScopeDay)
			case !full && s.dayLatch == s.day:
				s.dayLatch = ""
			}
		case MonthProgress:
			key := s.month.Format("2006-01")
			full := snap.MonthStats.DaysWithTasks > 0 && snap.MonthStats.Percent == 100
			switch {
			case full && s.monthLatch != key:
				s.monthLatch = key
				s.celebrate(ScopeMonth)
			case !full && s.monthLatch == key:
				s.monthLatch = ""
			}
		}
	}
}
