package writer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/lexitab/internal/dataset"
)

// DescriptorFile is the name the descriptor is written under.
const DescriptorFile = "descriptor.json"

// WriteDataset re-serializes a loaded dataset into dir: the descriptor plus
// one delimited data file per table. Reloading the written files yields an
// identical dataset (same tables, same rows, same order).
func WriteDataset(ds *dataset.Dataset, dir string, logger *slog.Logger) error {
	if ds == nil {
		return fmt.Errorf("cannot write nil dataset")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	desc := ds.Descriptor()

	for _, spec := range desc.Tables {
		t, ok := ds.Table(spec.Name)
		if !ok {
			return fmt.Errorf("descriptor declares table %s but dataset has none", spec.Name)
		}
		// An absolute file path cannot be re-homed into dir; writing to it
		// would overwrite the dataset's own source file.
		if filepath.IsAbs(spec.File) {
			return fmt.Errorf("table %s: absolute data file path %s cannot be written into %s", spec.Name, spec.File, dir)
		}
		if err := writeTable(t, filepath.Join(dir, spec.File)); err != nil {
			return err
		}

		logger.Info("table written",
			slog.String("table", spec.Name),
			slog.Int("rows", t.Len()),
		)
	}

	metaBytes, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptor: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, DescriptorFile), append(metaBytes, '\n')); err != nil {
		return err
	}

	logger.Info("dataset written",
		slog.String("name", ds.Name()),
		slog.String("path", dir),
		slog.Int("table_count", len(desc.Tables)),
	)

	return nil
}

// writeTable renders rows in declared column order, header first.
func writeTable(t *dataset.Table, path string) error {
	spec := t.Spec()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = spec.DelimiterRune()

	header := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", t.Name(), err)
	}

	record := make([]string, len(spec.Columns))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, col := range spec.Columns {
			record[j] = dataset.FormatValue(row[col.Name])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d for %s: %w", i, t.Name(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", t.Name(), err)
	}

	return writeAtomic(path, buf.Bytes())
}

// writeAtomic writes via a temp file and rename so a crash mid-write never
// leaves a truncated file behind.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
