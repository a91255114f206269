package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/leengari/lexitab/internal/dataset"
	"github.com/leengari/lexitab/internal/schema"
	"github.com/leengari/lexitab/internal/validate"
)

// Options tune how strictly data files are matched against the descriptor.
type Options struct {
	// Strict rejects data-file columns the descriptor does not declare.
	// Otherwise they are logged and ignored.
	Strict bool
}

// Load reads the descriptor and every declared data file into an immutable
// dataset, validating types, primary-key uniqueness and referential
// integrity. On failure no partial dataset is returned.
func Load(descriptorPath string, logger *slog.Logger) (*dataset.Dataset, error) {
	return LoadWithOptions(descriptorPath, logger, Options{})
}

func LoadWithOptions(descriptorPath string, logger *slog.Logger, opts Options) (*dataset.Dataset, error) {
	logger = logger.With(slog.String("run_id", uuid.New().String()))

	desc, err := schema.ParseDescriptor(descriptorPath)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(descriptorPath)

	// Columns that foreign keys point at; they get an index so the
	// referential check is a map lookup.
	referenced := make(map[string]map[string]bool)
	for _, t := range desc.Tables {
		for _, fk := range t.ForeignKeys {
			if referenced[fk.References.Table] == nil {
				referenced[fk.References.Table] = make(map[string]bool)
			}
			referenced[fk.References.Table][fk.References.Column] = true
		}
	}

	tables := make(map[string]*dataset.Table, len(desc.Tables))
	for _, spec := range desc.Tables {
		rows, err := loadTable(baseDir, spec, logger, opts)
		if err != nil {
			return nil, err
		}

		indexes := make(map[string]*dataset.Index)

		if spec.PrimaryKey != "" {
			idx := dataset.BuildIndex(spec.PrimaryKey, rows, true)
			if key, positions, dup := idx.Duplicates(); dup {
				return nil, validate.NewDuplicateKey(spec.Name, spec.PrimaryKey, key, positions)
			}
			indexes[spec.PrimaryKey] = idx
		}

		for col := range referenced[spec.Name] {
			if _, ok := indexes[col]; !ok {
				indexes[col] = dataset.BuildIndex(col, rows, false)
			}
		}

		tables[spec.Name] = dataset.NewTable(spec, rows, indexes)

		logger.Info("table loaded",
			slog.String("table", spec.Name),
			slog.Int("rows", len(rows)),
		)
	}

	if err := checkForeignKeys(desc, tables); err != nil {
		return nil, err
	}

	ds := dataset.New(desc, tables)

	logger.Info("dataset loaded",
		slog.String("name", desc.Name),
		slog.String("path", descriptorPath),
		slog.Int("table_count", len(tables)),
	)

	return ds, nil
}

// loadTable reads one delimited data file into coerced rows.
func loadTable(baseDir string, spec *schema.TableSpec, logger *slog.Logger, opts Options) ([]dataset.Row, error) {
	path := spec.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, validate.NewMissingFile(spec.Name, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = spec.DelimiterRune()

	header, err := r.Read()
	if err == io.EOF {
		return nil, validate.NewSchemaParse(spec.Name, "data file has no header row")
	}
	if err != nil {
		return nil, validate.NewSchemaParse(spec.Name, fmt.Sprintf("cannot read header: %v", err))
	}

	// Match header to declared columns. Every declared column must be
	// present; extra columns depend on strict mode.
	position := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := position[name]; dup {
			return nil, validate.NewSchemaParse(spec.Name, fmt.Sprintf("column %s appears twice in data file", name))
		}
		position[name] = i
	}
	for _, col := range spec.Columns {
		if _, ok := position[col.Name]; !ok {
			return nil, validate.NewSchemaParse(spec.Name, fmt.Sprintf("declared column %s missing from data file", col.Name))
		}
	}
	for _, name := range header {
		if spec.Column(name) == nil {
			if opts.Strict {
				return nil, validate.NewSchemaParse(spec.Name, fmt.Sprintf("data file column %s is not declared", name))
			}
			logger.Warn("ignoring undeclared column",
				slog.String("table", spec.Name),
				slog.String("column", name),
			)
		}
	}

	var rows []dataset.Row
	for rowIndex := 0; ; rowIndex++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, validate.NewSchemaParse(spec.Name, fmt.Sprintf("malformed row %d: %v", rowIndex, err))
		}

		row := make(dataset.Row, len(spec.Columns))
		for _, col := range spec.Columns {
			raw := record[position[col.Name]]
			// A declared primary key is implicitly required; a null key
			// would escape the uniqueness check entirely.
			if raw == "" && col.Name == spec.PrimaryKey {
				return nil, validate.NewNotNull(spec.Name, col.Name, rowIndex)
			}
			val, err := coerceCell(spec.Name, col, raw, rowIndex)
			if err != nil {
				return nil, err
			}
			row[col.Name] = val
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// checkForeignKeys verifies every non-null foreign-key value against the
// referenced table's key index.
func checkForeignKeys(desc *schema.Descriptor, tables map[string]*dataset.Table) error {
	for _, spec := range desc.Tables {
		t := tables[spec.Name]
		for _, fk := range spec.ForeignKeys {
			target := tables[fk.References.Table]
			for i := 0; i < t.Len(); i++ {
				v, ok := t.Row(i)[fk.Column]
				if !ok || v == nil {
					continue
				}
				key := dataset.FormatValue(v)
				if len(target.Lookup(fk.References.Column, key)) == 0 {
					return validate.NewReferentialViolation(spec.Name, fk.Column, v, fk.References.Table, i)
				}
			}
		}
	}
	return nil
}
