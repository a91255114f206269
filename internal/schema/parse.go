package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/leengari/lexitab/internal/validate"
)

// ParseDescriptor reads and structurally validates a dataset descriptor.
// Every table referenced by a foreign key must itself be declared with a
// data file, so a well-formed descriptor can always be loaded end to end.
func ParseDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, validate.NewMissingFile("", path, err)
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, validate.NewSchemaParse("", fmt.Sprintf("invalid descriptor %s: %v", path, err))
	}

	if err := checkDescriptor(&d); err != nil {
		return nil, err
	}

	return &d, nil
}

func checkDescriptor(d *Descriptor) error {
	if len(d.Tables) == 0 {
		return validate.NewSchemaParse("", "descriptor declares no tables")
	}

	seen := make(map[string]bool, len(d.Tables))
	for _, t := range d.Tables {
		if t.Name == "" {
			return validate.NewSchemaParse("", "table with empty name")
		}
		if seen[t.Name] {
			return validate.NewSchemaParse(t.Name, "table declared twice")
		}
		seen[t.Name] = true

		if err := checkTable(t); err != nil {
			return err
		}
	}

	// Cross-table: foreign keys must point at declared tables and columns.
	for _, t := range d.Tables {
		for _, fk := range t.ForeignKeys {
			target := d.Table(fk.References.Table)
			if target == nil {
				return validate.NewSchemaParse(t.Name,
					fmt.Sprintf("foreign key %s references undeclared table %s", fk.Column, fk.References.Table))
			}
			if target.Column(fk.References.Column) == nil {
				return validate.NewSchemaParse(t.Name,
					fmt.Sprintf("foreign key %s references unknown column %s.%s",
						fk.Column, fk.References.Table, fk.References.Column))
			}
		}
	}

	return nil
}

func checkTable(t *TableSpec) error {
	if t.File == "" {
		return validate.NewSchemaParse(t.Name, "table has no data file")
	}
	if len(t.Columns) == 0 {
		return validate.NewSchemaParse(t.Name, "table declares no columns")
	}
	if t.Delimiter != "" && utf8.RuneCountInString(t.Delimiter) != 1 {
		return validate.NewSchemaParse(t.Name, fmt.Sprintf("delimiter %q is not a single character", t.Delimiter))
	}

	cols := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == "" {
			return validate.NewSchemaParse(t.Name, "column with empty name")
		}
		if cols[c.Name] {
			return validate.NewSchemaParse(t.Name, fmt.Sprintf("column %s declared twice", c.Name))
		}
		cols[c.Name] = true

		if !knownTypes[c.Type] {
			return validate.NewSchemaParse(t.Name, fmt.Sprintf("column %s has unknown type %q", c.Name, c.Type))
		}
	}

	if t.PrimaryKey != "" && !cols[t.PrimaryKey] {
		return validate.NewSchemaParse(t.Name, fmt.Sprintf("primary key %s is not a declared column", t.PrimaryKey))
	}

	for _, fk := range t.ForeignKeys {
		if !cols[fk.Column] {
			return validate.NewSchemaParse(t.Name, fmt.Sprintf("foreign key on undeclared column %s", fk.Column))
		}
	}

	return nil
}

// DelimiterRune returns the table's delimiter, defaulting to comma.
func (t *TableSpec) DelimiterRune() rune {
	if t.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(t.Delimiter)
	return r
}
