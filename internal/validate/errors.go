package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingFile          Kind = "missing_file"
	KindSchemaParse          Kind = "schema_parse"
	KindTypeMismatch         Kind = "type_mismatch"
	KindNotNull              Kind = "not_null"
	KindDuplicateKey         Kind = "duplicate_key"
	KindReferentialIntegrity Kind = "referential_integrity"
)

// Error represents a violation found while loading a dataset
// (missing data file, unparsable descriptor, type mismatch,
// duplicate key, dangling foreign key).
type Error struct {
	Kind     Kind
	Table    string      // table name (empty for dataset-level failures)
	Column   string      // column name (empty if table-level)
	Value    interface{} // offending value (may be nil)
	Reason   string      // human-readable explanation
	RowIndex int         // row number (0-based) where the violation occurred (-1 if unknown)
	Rows     []int       // for duplicate keys: all conflicting row positions
}

func (e *Error) Error() string {
	var parts []string

	switch {
	case e.Table != "" && e.Column != "":
		parts = append(parts, fmt.Sprintf("%s in %s.%s", e.Kind, e.Table, e.Column))
	case e.Table != "":
		parts = append(parts, fmt.Sprintf("%s in %s", e.Kind, e.Table))
	default:
		parts = append(parts, string(e.Kind))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	if len(e.Rows) > 0 {
		parts = append(parts, fmt.Sprintf("rows %v", e.Rows))
	}

	return strings.Join(parts, " - ")
}

func NewMissingFile(table, path string, cause error) *Error {
	return &Error{
		Kind:     KindMissingFile,
		Table:    table,
		Reason:   fmt.Sprintf("cannot read %s: %v", path, cause),
		RowIndex: -1,
	}
}

func NewSchemaParse(table, reason string) *Error {
	return &Error{
		Kind:     KindSchemaParse,
		Table:    table,
		Reason:   reason,
		RowIndex: -1,
	}
}

func NewTypeMismatch(table, column string, value interface{}, expected string, rowIndex int) *Error {
	return &Error{
		Kind:     KindTypeMismatch,
		Table:    table,
		Column:   column,
		Value:    value,
		Reason:   fmt.Sprintf("expected %s", expected),
		RowIndex: rowIndex,
	}
}

func NewNotNull(table, column string, rowIndex int) *Error {
	return &Error{
		Kind:     KindNotNull,
		Table:    table,
		Column:   column,
		Reason:   "missing required value",
		RowIndex: rowIndex,
	}
}

func NewDuplicateKey(table, column string, value interface{}, rows []int) *Error {
	return &Error{
		Kind:     KindDuplicateKey,
		Table:    table,
		Column:   column,
		Value:    value,
		Reason:   "duplicate key",
		RowIndex: -1,
		Rows:     rows,
	}
}

func NewReferentialViolation(table, column string, value interface{}, refTable string, rowIndex int) *Error {
	return &Error{
		Kind:     KindReferentialIntegrity,
		Table:    table,
		Column:   column,
		Value:    value,
		Reason:   fmt.Sprintf("no matching key in %s", refTable),
		RowIndex: rowIndex,
	}
}
