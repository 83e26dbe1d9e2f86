package remove

import (
	"context"
	"fmt"

	"github.com/Kaidooo2024/momentum.day/pkg/store"
)

// Remove deletes one note or task by id.
type Remove struct {
	ID string

	Store *store.RecordStore
}

func (r *Remove) Do(ctx context.Context) error {
	if err := r.Store.Remove(ctx, r.ID); err != nil {
		return err
	}
	fmt.Println("removed", r.ID)
	return nil
}
