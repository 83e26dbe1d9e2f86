package day

import (
	"context"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/printers"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Day prints the panel for one day: open tasks, notes, finished tasks,
// then the completion bar.
type Day struct {
	On     string
	ShowID bool

	Store *store.RecordStore
}

func (d *Day) Do(_ context.Context) error {
	day := record.Today()
	if d.On != "" {
		var err error
		day, err = record.ParseDay(d.On)
		if err != nil {
			return err
		}
	}

	pp := printers.PrettyPrint{ShowID: d.ShowID}
	pp.DayPanel(day, aggregate.ItemsOnDay(d.Store.Notes(), d.Store.Tasks(), day))
	pp.DayProgress(aggregate.DayStatsOn(d.Store.Tasks(), day))
	return nil
}
