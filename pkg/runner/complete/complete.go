package complete

import (
	"context"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/printers"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Complete toggles the done state of one task.
type Complete struct {
	ID string

	Store *store.RecordStore
}

func (c *Complete) Do(ctx context.Context) error {
	if err := c.Store.ToggleCompleted(ctx, c.ID); err != nil {
		return err
	}

	for _, t := range c.Store.Tasks() {
		if t.ID == c.ID {
			pp := printers.PrettyPrint{}
			pp.DayPanel(t.On, aggregate.ItemsOnDay(c.Store.Notes(), c.Store.Tasks(), t.On))
			pp.DayProgress(aggregate.DayStatsOn(c.Store.Tasks(), t.On))
			break
		}
	}
	return nil
}
