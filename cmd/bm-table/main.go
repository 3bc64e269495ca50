// Command bm-table dumps a full translation table as two-column
// tab-delimited output, one row per (source, target) pair.
//
// Usage:
//
//	bm-table --from genesymbol --to uniprot
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biomap/biomap-go/internal/cli"
)

var (
	mapOpts cli.MapOptions
	ioOpts  cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "bm-table",
	Short: "Dump a full translation table",
	Long: `Build (or load) the translation table between two ID namespaces
and write it as tab-delimited output, one row per (source, target)
pair.

Example:

  bm-table --from genesymbol --to uniprot --organism 9606`,
	RunE: run,
}

func init() {
	cli.AddMapFlags(rootCmd, &mapOpts)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if mapOpts.From == "" {
		return fmt.Errorf("--from is required")
	}

	mapper, err := mapOpts.NewMapper()
	if err != nil {
		return err
	}
	defer mapper.Close()

	rows, err := mapper.TranslationRows(ctx, mapOpts.From, mapOpts.To, mapOpts.MapCallOptions()...)
	if err != nil {
		return fmt.Errorf("building table: %w", err)
	}

	outFile, err := cli.OpenOutput(ioOpts.Output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer outFile.Close()

	writer := cli.NewTabWriter(outFile)
	defer writer.Flush()

	if err := writer.WriteHeaders([]string{mapOpts.From, mapOpts.To}); err != nil {
		return fmt.Errorf("writing headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.WriteRow(row.A, row.B); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
