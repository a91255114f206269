package dataset

import "strconv"

// Row represents a single table row.
// Key = column name, Value = coerced cell value
// (string, int64, float64, bool, or nil for an empty cell).
type Row map[string]interface{}

func (r Row) Copy() Row {
	copy := make(Row, len(r))
	for k, v := range r {
		copy[k] = v
	}
	return copy
}

// FormatValue renders a coerced cell value back to its tabular form.
// A nil cell becomes the empty string. Floats use the shortest
// representation that survives a reload unchanged.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
