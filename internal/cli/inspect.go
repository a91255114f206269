package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leengari/lexitab/internal/dataset"
	"github.com/leengari/lexitab/internal/loader"
)

// tableSummary is the machine-readable shape of one table in inspect output.
type tableSummary struct {
	Name        string   `json:"name"`
	File        string   `json:"file"`
	Rows        int      `json:"rows"`
	Columns     int      `json:"columns"`
	PrimaryKey  string   `json:"primary_key,omitempty"`
	ForeignKeys []string `json:"foreign_keys,omitempty"`
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <descriptor>",
		Short: "Load a dataset and print a per-table summary",
		Long: `Inspect validates the dataset exactly like validate, then prints row
counts, column counts, primary keys and foreign keys per table.

Use --output json for machine-readable output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loader.LoadWithOptions(args[0], logger, loader.Options{Strict: cfg.Strict})
			if err != nil {
				return err
			}

			summaries := summarize(ds)
			if cfg.Output == "json" {
				return renderJSON(cmd, ds, summaries)
			}
			renderTable(cmd, ds, summaries)
			return nil
		},
	}
}

func summarize(ds *dataset.Dataset) []tableSummary {
	var out []tableSummary
	for _, name := range ds.TableNames() {
		t, _ := ds.Table(name)
		spec := t.Spec()

		var fks []string
		for _, fk := range spec.ForeignKeys {
			fks = append(fks, fmt.Sprintf("%s → %s.%s", fk.Column, fk.References.Table, fk.References.Column))
		}

		out = append(out, tableSummary{
			Name:        name,
			File:        spec.File,
			Rows:        t.Len(),
			Columns:     len(spec.Columns),
			PrimaryKey:  spec.PrimaryKey,
			ForeignKeys: fks,
		})
	}
	return out
}

func renderTable(cmd *cobra.Command, ds *dataset.Dataset, summaries []tableSummary) {
	fmt.Fprintf(cmd.OutOrStdout(), "dataset: %s\n", ds.Name())

	w := table.NewWriter()
	w.SetOutputMirror(cmd.OutOrStdout())
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Table", "File", "Rows", "Columns", "Primary Key", "Foreign Keys"})

	total := 0
	for _, s := range summaries {
		w.AppendRow(table.Row{s.Name, s.File, s.Rows, s.Columns, s.PrimaryKey, strings.Join(s.ForeignKeys, ", ")})
		total += s.Rows
	}
	w.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "(%d rows across %d tables)\n", total, len(summaries))
}

func renderJSON(cmd *cobra.Command, ds *dataset.Dataset, summaries []tableSummary) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Dataset string         `json:"dataset"`
		Tables  []tableSummary `json:"tables"`
	}{Dataset: ds.Name(), Tables: summaries})
}
