package repositories

import (
	"context"

	"github.com/forgehq/hackforge/store"
)

// queryOne fetches at most one row matching the filter. A nil row with a
// nil error means no match; callers map that to their not-found sentinel.
func queryOne(ctx context.Context, c store.Client, table string, filter store.Filter) (store.Row, error) {
	rows, err := c.QueryRows(ctx, table, store.QueryOptions{Filter: filter, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func checkUpdatedRows(count int, notFoundError error) error {
	if count == 0 {
		return notFoundError
	}
	return nil
}
