package schema

// Descriptor is the parsed metadata file of a dataset. It declares every
// table, the data file holding the table's rows, and the relations between
// tables.
type Descriptor struct {
	Name    string       `json:"name"`
	Version int          `json:"version,omitempty"`
	Tables  []*TableSpec `json:"tables"`
}

// TableSpec declares one table: its data file, column schema, primary key
// and outgoing foreign keys.
type TableSpec struct {
	Name        string        `json:"name"`
	File        string        `json:"file"`
	Delimiter   string        `json:"delimiter,omitempty"`
	PrimaryKey  string        `json:"primary_key,omitempty"`
	Columns     []*ColumnSpec `json:"columns"`
	ForeignKeys []*ForeignKey `json:"foreign_keys,omitempty"`
}

// ForeignKey declares that values of Column must exist in the referenced
// table's referenced column.
type ForeignKey struct {
	Column     string    `json:"column"`
	References Reference `json:"references"`
}

// Reference is the target side of a foreign key.
type Reference struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// Table returns the spec of the named table, or nil.
func (d *Descriptor) Table(name string) *TableSpec {
	for _, t := range d.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Column returns the spec of the named column, or nil.
func (t *TableSpec) Column(name string) *ColumnSpec {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}
