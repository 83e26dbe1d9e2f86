package add

import (
	"context"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/printers"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

type Add struct {
	Kind     record.Kind
	Text     string
	On       string
	Priority string

	Store *store.RecordStore
}

func (a *Add) Do(ctx context.Context) error {
	day := record.Today()
	if a.On != "" {
		var err error
		day, err = record.ParseDay(a.On)
		if err != nil {
			return err
		}
	}
	priority, err := record.ParsePriority(a.Priority)
	if err != nil {
		return err
	}

	if _, err := a.Store.Add(ctx, a.Kind, store.Draft{
		Text:     a.Text,
		On:       day,
		Priority: priority,
	}); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.DayPanel(day, aggregate.ItemsOnDay(a.Store.Notes(), a.Store.Tasks(), day))
	pp.DayProgress(aggregate.DayStatsOn(a.Store.Tasks(), day))
	return nil
}
