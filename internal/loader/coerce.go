package loader

import (
	"strconv"

	"github.com/leengari/lexitab/internal/schema"
	"github.com/leengari/lexitab/internal/validate"
)

// coerceCell converts a raw cell into its declared semantic type.
// An empty cell is null; null in a required column is a violation.
func coerceCell(table string, col *schema.ColumnSpec, raw string, rowIndex int) (interface{}, error) {
	if raw == "" {
		if col.Required {
			return nil, validate.NewNotNull(table, col.Name, rowIndex)
		}
		return nil, nil
	}

	switch col.Type {
	case schema.ColumnTypeString:
		return raw, nil

	case schema.ColumnTypeInteger:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, validate.NewTypeMismatch(table, col.Name, raw, "integer", rowIndex)
		}
		return n, nil

	case schema.ColumnTypeFloat, schema.ColumnTypeDecimal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, validate.NewTypeMismatch(table, col.Name, raw, "number", rowIndex)
		}
		return f, nil

	case schema.ColumnTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, validate.NewTypeMismatch(table, col.Name, raw, "boolean", rowIndex)
		}
		return b, nil

	default:
		return nil, validate.NewSchemaParse(table, "unknown column type "+string(col.Type))
	}
}
