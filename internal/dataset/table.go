package dataset

import "github.com/leengari/lexitab/internal/schema"

// Table is an immutable, ordered sequence of rows conforming to a column
// schema. Rows are fixed at load time; accessors hand out copies so callers
// cannot reach the backing storage.
type Table struct {
	name    string
	spec    *schema.TableSpec
	rows    []Row
	indexes map[string]*Index
}

// NewTable builds a table over already-validated rows.
func NewTable(spec *schema.TableSpec, rows []Row, indexes map[string]*Index) *Table {
	if indexes == nil {
		indexes = make(map[string]*Index)
	}
	return &Table{
		name:    spec.Name,
		spec:    spec,
		rows:    rows,
		indexes: indexes,
	}
}

func (t *Table) Name() string { return t.name }

func (t *Table) Spec() *schema.TableSpec { return t.spec }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns a copy of the row at position i.
func (t *Table) Row(i int) Row { return t.rows[i].Copy() }

// Rows returns copies of all rows in load order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = r.Copy()
	}
	return out
}

// Index returns the index on the given column, or nil if none was built.
func (t *Table) Index(column string) *Index { return t.indexes[column] }

// Lookup returns the positions of rows whose column equals the formatted
// value, using the column index when one exists and scanning otherwise.
func (t *Table) Lookup(column, value string) []int {
	if idx, ok := t.indexes[column]; ok {
		return idx.Lookup(value)
	}
	var out []int
	for i, row := range t.rows {
		if v, ok := row[column]; ok && v != nil && FormatValue(v) == value {
			out = append(out, i)
		}
	}
	return out
}
