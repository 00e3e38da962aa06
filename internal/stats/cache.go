package stats

import (
	"maps"

	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/errors"
)

// Cache maps numeric column names to their precomputed statistics.
//
// A Cache is built once and never patched: when the data changes, build a new one.
// It is not safe for concurrent use without external synchronization.
type Cache struct {
	stats map[string]ColumnStatistics
	order []string
}

// Build scans every numeric column of df once and records its statistics.
// Non-numeric columns get no entry.
func Build(df *dataframe.DataFrame) *Cache {
	names := df.NumericColumns()
	c := &Cache{
		stats: make(map[string]ColumnStatistics, len(names)),
		order: names,
	}

	for _, name := range names {
		values, missing, _ := df.Float64Values(name)
		c.stats[name] = Compute(values, missing)
	}

	return c
}

// StatsFor returns the statistics of the named column. The error satisfies
// errors.IsNotFound when the column is unknown or not numeric.
func (c *Cache) StatsFor(column string) (ColumnStatistics, error) {
	cs, ok := c.stats[column]
	if !ok {
		return ColumnStatistics{}, errors.NewNotFoundError("StatsFor", column).
			WithHint("statistics are kept for numeric columns only")
	}
	return cs, nil
}

// All returns a copy of every cached record, keyed by column name.
func (c *Cache) All() map[string]ColumnStatistics {
	return maps.Clone(c.stats)
}

// Columns returns the cached column names in dataset order.
func (c *Cache) Columns() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of cached columns.
func (c *Cache) Len() int {
	return len(c.order)
}
