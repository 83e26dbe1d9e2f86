package view

import (
	"context"
	"testing"
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

type renderLog struct {
	regions []Region
	snaps   []Snapshot
}

func (r *renderLog) Render(region Region, snap Snapshot) {
	r.regions = append(r.regions, region)
	r.snaps = append(r.snaps, snap)
}

func (r *renderLog) reset() {
	r.regions = nil
	r.snaps = nil
}

func fixedClock() func() time.Time {
	at := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.Local)
	return func() time.Time { return at }
}

func newFixture(t *testing.T) (*store.RecordStore, *Sync, *renderLog) {
	t.Helper()
	kv := storeKV{data: map[string]string{}}
	s := store.New(kv, store.WithClock(tickingClock()))
	log := &renderLog{}
	sync := NewSync(s, log, WithClock(fixedClock()))
	s.Subscribe(sync.OnMutation)
	return s, sync, log
}

type storeKV struct{ data map[string]string }

func (k storeKV) Get(key string) (string, bool) { v, ok := k.data[key]; return v, ok }
func (k storeKV) Set(key, value string) error   { k.data[key] = value; return nil }

func tickingClock() func() time.Time {
	at := time.Date(2024, time.June, 5, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func regionsEqual(got []Region, want ...Region) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMonthNavigationScope(t *testing.T) {
	_, sync, log := newFixture(t)
	log.reset()

	sync.NextMonth()
	if !regionsEqual(log.regions, MonthGrid, MonthProgress) {
		t.Fatalf("month navigation must redraw only monthly regions, got %v", log.regions)
	}
	if got := sync.Month(); got.Month() != time.July {
		t.Fatalf("expected July, got %v", got)
	}

	log.reset()
	sync.PrevMonth()
	if !regionsEqual(log.regions, MonthGrid, MonthProgress) {
		t.Fatalf("got %v", log.regions)
	}
	// The daily panel is untouched by month navigation.
	for _, r := range log.regions {
		if r == DayPanel || r == DayProgress {
			t.Fatalf("daily region redrawn on month navigation: %v", log.regions)
		}
	}
}

func TestDayNavigationScope(t *testing.T) {
	_, sync, log := newFixture(t)
	log.reset()

	sync.NextDay()
	if !regionsEqual(log.regions, DayPanel, DayProgress) {
		t.Fatalf("day navigation must redraw only daily regions, got %v", log.regions)
	}
	if sync.Day() != record.MustDay("2024-06-06") {
		t.Fatalf("expected June 6, got %s", sync.Day())
	}
}

func TestMutationRedrawsAllScopes(t *testing.T) {
	s, sync, log := newFixture(t)
	log.reset()

	if _, err := s.Add(context.Background(), record.KindTask, store.Draft{Text: "x", On: sync.Day()}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !regionsEqual(log.regions, MonthGrid, MonthProgress, DayPanel, DayProgress) {
		t.Fatalf("mutation must redraw all four regions, got %v", log.regions)
	}

	// Every region rendered from the same snapshot.
	for _, snap := range log.snaps {
		if snap.DayStats.TotalTasks != 1 || len(snap.Grid) != 42 {
			t.Fatalf("inconsistent snapshot: %+v", snap.DayStats)
		}
	}
}

func TestMutationRedrawsOpenModal(t *testing.T) {
	s, sync, log := newFixture(t)
	sync.OpenModal(sync.Day())
	log.reset()

	if _, err := s.Add(context.Background(), record.KindNote, store.Draft{Text: "n", On: sync.Day()}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !regionsEqual(log.regions, MonthGrid, MonthProgress, DayPanel, DayProgress, Modal) {
		t.Fatalf("open modal must be part of the mutation redraw, got %v", log.regions)
	}
	last := log.snaps[len(log.snaps)-1]
	if !last.ModalOpen || len(last.ModalItems) != 1 {
		t.Fatalf("modal snapshot stale: %+v", last)
	}
}

func TestPhaseReturnsToIdle(t *testing.T) {
	_, sync, _ := newFixture(t)
	sync.Refresh()
	for _, r := range AllRegions() {
		if sync.Phase(r) != Idle {
			t.Fatalf("region %v stuck in %v", r, sync.Phase(r))
		}
	}
}

func TestCelebrationFiresOncePerFullDay(t *testing.T) {
	s, sync, _ := newFixture(t)
	var fired []Scope
	celebrate := func(scope Scope) { fired = append(fired, scope) }
	// Rebuild with a celebrator attached.
	sync2 := NewSync(s, &renderLog{}, WithClock(fixedClock()), WithCelebrator(celebrate))
	s.Subscribe(sync2.OnMutation)
	_ = sync

	ctx := context.Background()
	id, err := s.Add(ctx, record.KindTask, store.Draft{Text: "only", On: sync2.Day()})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("nothing to celebrate yet, got %v", fired)
	}

	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	dayFired := 0
	for _, scope := range fired {
		if scope == ScopeDay {
			dayFired++
		}
	}
	if dayFired != 1 {
		t.Fatalf("expected exactly one day celebration, got %d (%v)", dayFired, fired)
	}

	// Re-rendering an already-100% day stays silent.
	before := len(fired)
	sync2.Refresh()
	sync2.GoToDay(sync2.Day())
	if len(fired) != before {
		t.Fatalf("re-render must not re-trigger, got %v", fired)
	}

	// Dropping below 100% re-arms the latch.
	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	dayFired = 0
	for _, scope := range fired {
		if scope == ScopeDay {
			dayFired++
		}
	}
	if dayFired != 2 {
		t.Fatalf("latch must re-arm after dropping below 100%%, got %d", dayFired)
	}
}

func TestCelebrationMonthScope(t *testing.T) {
	var fired []Scope
	kv := storeKV{data: map[string]string{}}
	s := store.New(kv, store.WithClock(tickingClock()))
	sync := NewSync(s, &renderLog{}, WithClock(fixedClock()), WithCelebrator(func(scope Scope) {
		fired = append(fired, scope)
	}))
	s.Subscribe(sync.OnMutation)

	ctx := context.Background()
	id, _ := s.Add(ctx, record.KindTask, store.Draft{Text: "june work", On: record.MustDay("2024-06-10")})
	if err := s.ToggleCompleted(ctx, id); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	months := 0
	for _, scope := range fired {
		if scope == ScopeMonth {
			months++
		}
	}
	if months != 1 {
		t.Fatalf("expected one month celebration, got %d (%v)", months, fired)
	}
}

func TestEditStateIsExplicit(t *testing.T) {
	_, sync, log := newFixture(t)
	log.reset()

	sync.StartEdit("42")
	if sync.EditingID() != "42" {
		t.Fatalf("expected editing id, got %q", sync.EditingID())
	}
	if !regionsEqual(log.regions, DayPanel) {
		t.Fatalf("edit state change redraws the daily panel, got %v", log.regions)
	}
	if log.snaps[0].EditingID != "42" {
		t.Fatalf("snapshot must carry the editing id, got %q", log.snaps[0].EditingID)
	}

	sync.StopEdit()
	if sync.EditingID() != "" {
		t.Fatal("expected cleared editing id")
	}
}
