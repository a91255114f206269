package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/lexitab/internal/validate"
)

func writeDescriptor(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "descriptor.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestParseDescriptor(t *testing.T) {
	path := writeDescriptor(t, `{
		"name": "numeralbank",
		"version": 1,
		"tables": [
			{
				"name": "varieties",
				"file": "varieties.csv",
				"primary_key": "id",
				"columns": [
					{"name": "id", "type": "string", "required": true},
					{"name": "name", "type": "string"},
					{"name": "latitude", "type": "float"}
				]
			},
			{
				"name": "lexemes",
				"file": "lexemes.csv",
				"primary_key": "id",
				"columns": [
					{"name": "id", "type": "string", "required": true},
					{"name": "variety_id", "type": "string"},
					{"name": "form", "type": "string"}
				],
				"foreign_keys": [
					{"column": "variety_id", "references": {"table": "varieties", "column": "id"}}
				]
			}
		]
	}`)

	d, err := ParseDescriptor(path)
	require.NoError(t, err)

	assert.Equal(t, "numeralbank", d.Name)
	require.Len(t, d.Tables, 2)

	varieties := d.Table("varieties")
	require.NotNil(t, varieties)
	assert.Equal(t, "id", varieties.PrimaryKey)
	assert.Equal(t, ColumnTypeFloat, varieties.Column("latitude").Type)

	lexemes := d.Table("lexemes")
	require.NotNil(t, lexemes)
	require.Len(t, lexemes.ForeignKeys, 1)
	assert.Equal(t, "variety_id", lexemes.ForeignKeys[0].Column)
	assert.Equal(t, "varieties", lexemes.ForeignKeys[0].References.Table)
}

func TestParseDescriptorMissingFile(t *testing.T) {
	_, err := ParseDescriptor(filepath.Join(t.TempDir(), "nope.json"))

	var verr *validate.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, validate.KindMissingFile, verr.Kind)
}

func TestParseDescriptorRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "invalid json",
			body: `{"tables": [`,
		},
		{
			name: "no tables",
			body: `{"name": "empty", "tables": []}`,
		},
		{
			name: "duplicate table",
			body: `{"tables": [
				{"name": "a", "file": "a.csv", "columns": [{"name": "id", "type": "string"}]},
				{"name": "a", "file": "a2.csv", "columns": [{"name": "id", "type": "string"}]}
			]}`,
		},
		{
			name: "no data file",
			body: `{"tables": [{"name": "a", "columns": [{"name": "id", "type": "string"}]}]}`,
		},
		{
			name: "unknown column type",
			body: `{"tables": [{"name": "a", "file": "a.csv", "columns": [{"name": "id", "type": "uuid"}]}]}`,
		},
		{
			name: "duplicate column",
			body: `{"tables": [{"name": "a", "file": "a.csv", "columns": [
				{"name": "id", "type": "string"}, {"name": "id", "type": "string"}
			]}]}`,
		},
		{
			name: "primary key not declared",
			body: `{"tables": [{"name": "a", "file": "a.csv", "primary_key": "pk",
				"columns": [{"name": "id", "type": "string"}]}]}`,
		},
		{
			name: "foreign key column not declared",
			body: `{"tables": [{"name": "a", "file": "a.csv",
				"columns": [{"name": "id", "type": "string"}],
				"foreign_keys": [{"column": "ref", "references": {"table": "a", "column": "id"}}]}]}`,
		},
		{
			name: "foreign key to undeclared table",
			body: `{"tables": [{"name": "a", "file": "a.csv",
				"columns": [{"name": "id", "type": "string"}],
				"foreign_keys": [{"column": "id", "references": {"table": "b", "column": "id"}}]}]}`,
		},
		{
			name: "foreign key to unknown target column",
			body: `{"tables": [
				{"name": "a", "file": "a.csv",
					"columns": [{"name": "id", "type": "string"}],
					"foreign_keys": [{"column": "id", "references": {"table": "b", "column": "nope"}}]},
				{"name": "b", "file": "b.csv", "columns": [{"name": "id", "type": "string"}]}
			]}`,
		},
		{
			name: "multi-character delimiter",
			body: `{"tables": [{"name": "a", "file": "a.csv", "delimiter": "||",
				"columns": [{"name": "id", "type": "string"}]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDescriptor(writeDescriptor(t, tt.body))

			var verr *validate.Error
			require.True(t, errors.As(err, &verr), "expected a validation error, got %v", err)
			assert.Equal(t, validate.KindSchemaParse, verr.Kind)
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', (&TableSpec{}).DelimiterRune())
	assert.Equal(t, '\t', (&TableSpec{Delimiter: "\t"}).DelimiterRune())
	assert.Equal(t, ';', (&TableSpec{Delimiter: ";"}).DelimiterRune())
}
