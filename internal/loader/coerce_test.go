package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/lexitab/internal/schema"
	"github.com/leengari/lexitab/internal/validate"
)

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		name string
		col  *schema.ColumnSpec
		raw  string
		want interface{}
	}{
		{"string", &schema.ColumnSpec{Name: "form", Type: schema.ColumnTypeString}, "hand", "hand"},
		{"integer", &schema.ColumnSpec{Name: "n", Type: schema.ColumnTypeInteger}, "42", int64(42)},
		{"negative integer", &schema.ColumnSpec{Name: "n", Type: schema.ColumnTypeInteger}, "-7", int64(-7)},
		{"float", &schema.ColumnSpec{Name: "lat", Type: schema.ColumnTypeFloat}, "-8.31", float64(-8.31)},
		{"decimal", &schema.ColumnSpec{Name: "cov", Type: schema.ColumnTypeDecimal}, "0.95", float64(0.95)},
		{"boolean", &schema.ColumnSpec{Name: "loan", Type: schema.ColumnTypeBool}, "true", true},
		{"empty optional is null", &schema.ColumnSpec{Name: "gloss", Type: schema.ColumnTypeString}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceCell("forms", tt.col, tt.raw, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceCellFailures(t *testing.T) {
	tests := []struct {
		name string
		col  *schema.ColumnSpec
		raw  string
		kind validate.Kind
	}{
		{"text in integer", &schema.ColumnSpec{Name: "n", Type: schema.ColumnTypeInteger}, "ten", validate.KindTypeMismatch},
		{"float in integer", &schema.ColumnSpec{Name: "n", Type: schema.ColumnTypeInteger}, "1.5", validate.KindTypeMismatch},
		{"text in float", &schema.ColumnSpec{Name: "lat", Type: schema.ColumnTypeFloat}, "north", validate.KindTypeMismatch},
		{"text in boolean", &schema.ColumnSpec{Name: "loan", Type: schema.ColumnTypeBool}, "yes", validate.KindTypeMismatch},
		{"empty required", &schema.ColumnSpec{Name: "id", Type: schema.ColumnTypeString, Required: true}, "", validate.KindNotNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerceCell("forms", tt.col, tt.raw, 3)

			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, "forms", verr.Table)
			assert.Equal(t, tt.col.Name, verr.Column)
			assert.Equal(t, 3, verr.RowIndex)
		})
	}
}
