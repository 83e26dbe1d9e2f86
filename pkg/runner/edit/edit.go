package edit

import (
	"context"

	"github.com/Kaidooo2024/momentum.day/pkg/aggregate"
	"github.com/Kaidooo2024/momentum.day/pkg/printers"
	"github.com/Kaidooo2024/momentum.day/pkg/record"
	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Edit patches an existing task. Only the fields the user set on the
// command line change.
type Edit struct {
	ID       string
	Text     string
	On       string
	Priority string

	Store *store.RecordStore
}

func (e *Edit) Do(ctx context.Context) error {
	var patch store.Patch
	if e.Text != "" {
		patch.Text = &e.Text
	}
	if e.On != "" {
		day, err := record.ParseDay(e.On)
		if err != nil {
			return err
		}
		patch.On = &day
	}
	if e.Priority != "" {
		priority, err := record.ParsePriority(e.Priority)
		if err != nil {
			return err
		}
		patch.Priority = &priority
	}

	if err := e.Store.Update(ctx, e.ID, patch); err != nil {
		return err
	}

	for _, t := range e.Store.Tasks() {
		if t.ID == e.ID {
			pp := printers.PrettyPrint{}
			pp.DayPanel(t.On, aggregate.ItemsOnDay(e.Store.Notes(), e.Store.Tasks(), t.On))
			break
		}
	}
	return nil
}
