package month

import (
	"context"
	"fmt"
	"time"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/printers"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

const layoutMonth = "2006-01"

// Month prints the six-week calendar grid and the month completion bar.
type Month struct {
	Month string

	Store *store.RecordStore
}

func (m *Month) Do(_ context.Context) error {
	first := time.Now()
	if m.Month != "" {
		var err error
		first, err = time.ParseInLocation(layoutMonth, m.Month, time.Local)
		if err != nil {
			return fmt.Errorf("bad month %q, want YYYY-MM: %w", m.Month, err)
		}
	}
	first = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, time.Local)

	today := record.Today()
	notes, tasks := m.Store.Notes(), m.Store.Tasks()

	pp := printers.PrettyPrint{}
	pp.MonthGrid(first, aggregate.CalendarGrid(notes, tasks, first.Year(), first.Month(), today))
	pp.MonthProgress(aggregate.MonthStatsOn(tasks, first.Year(), first.Month(), today))
	return nil
}
