package dataset

import (
	"sort"

	"github.com/leengari/lexitab/internal/schema"
)

// Dataset is a loaded, validated collection of tables
// (a descriptor plus one table per declared data file).
type Dataset struct {
	name       string
	descriptor *schema.Descriptor
	tables     map[string]*Table
}

// New builds a dataset from validated tables.
func New(d *schema.Descriptor, tables map[string]*Table) *Dataset {
	return &Dataset{
		name:       d.Name,
		descriptor: d,
		tables:     tables,
	}
}

func (ds *Dataset) Name() string { return ds.name }

func (ds *Dataset) Descriptor() *schema.Descriptor { return ds.descriptor }

// Table returns the named table.
func (ds *Dataset) Table(name string) (*Table, bool) {
	t, ok := ds.tables[name]
	return t, ok
}

// TableNames returns all table names, sorted.
func (ds *Dataset) TableNames() []string {
	names := make([]string, 0, len(ds.tables))
	for name := range ds.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
