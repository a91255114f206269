package dataset

// Index is an in-memory index on a single column.
// Keys are the formatted cell values; nil cells are not indexed.
type Index struct {
	Column string
	Data   map[string][]int // value → row positions
	Unique bool
}

// BuildIndex indexes the given column across all rows.
func BuildIndex(column string, rows []Row, unique bool) *Index {
	idx := &Index{
		Column: column,
		Data:   make(map[string][]int),
		Unique: unique,
	}
	for i, row := range rows {
		v, ok := row[column]
		if !ok || v == nil {
			continue
		}
		key := FormatValue(v)
		idx.Data[key] = append(idx.Data[key], i)
	}
	return idx
}

// Lookup returns the positions of rows whose column equals the given value.
func (idx *Index) Lookup(value string) []int {
	return idx.Data[value]
}

// Duplicates returns the key whose duplicate appears earliest in row order,
// with all conflicting positions, or ok=false when the index is
// duplicate-free. Picking the earliest second occurrence keeps the reported
// key stable across runs.
func (idx *Index) Duplicates() (key string, rows []int, ok bool) {
	earliest := -1
	for k, positions := range idx.Data {
		if len(positions) < 2 {
			continue
		}
		if earliest == -1 || positions[1] < earliest {
			key, rows, ok = k, positions, true
			earliest = positions[1]
		}
	}
	return key, rows, ok
}
