package schema

// ColumnType is the declared semantic type of a column.
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeFloat   ColumnType = "float"
	ColumnTypeDecimal ColumnType = "decimal"
	ColumnTypeBool    ColumnType = "boolean"
)

// knownTypes lists every type a descriptor may declare.
var knownTypes = map[ColumnType]bool{
	ColumnTypeString:  true,
	ColumnTypeInteger: true,
	ColumnTypeFloat:   true,
	ColumnTypeDecimal: true,
	ColumnTypeBool:    true,
}

// ColumnSpec declares one column of a table.
type ColumnSpec struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Required bool       `json:"required,omitempty"`
}
