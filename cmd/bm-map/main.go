// Command bm-map translates an identifier column of a tab-delimited
// stream into another ID namespace.
//
// For every input row the key column is translated and one column is
// appended with the delimiter-joined result; an unmappable identifier
// yields an empty cell and never aborts the batch.
//
// Usage:
//
//	bm-map [options] [name ...]
//
// Examples:
//
//	# Translate gene symbols to UniProt accessions
//	bm-map --from genesymbol --to uniprot TP53 EGFR
//
//	# Translate the second column of a TSV file
//	bm-map --from uniprot --to entrez -c 2 -i proteins.tsv
//
//	# Mouse instead of human
//	bm-map --from genesymbol --to uniprot --organism 10090 Trp53
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/biomap/biomap-go/internal/cli"
)

var (
	mapOpts cli.MapOptions
	colOpts cli.ColOptions
	ioOpts  cli.IOOptions
)

var rootCmd = &cobra.Command{
	Use:   "bm-map [name ...]",
	Short: "Translate identifiers between ID namespaces",
	Long: `Translate biological identifiers between ID namespaces
(uniprot, genesymbol, entrez, refseqp, ensg, mir-mat, ...).

Names given as arguments are translated one per line. Without
arguments, a tab-delimited stream is read and the translation of the
key column is appended as a new column.

Examples:

  # Translate gene symbols to UniProt accessions
  bm-map --from genesymbol --to uniprot TP53 EGFR

  # Translate the second column of a TSV file
  bm-map --from uniprot --to entrez -c 2 -i proteins.tsv`,
	RunE: run,
}

func init() {
	cli.AddMapFlags(rootCmd, &mapOpts)
	cli.AddColFlags(rootCmd, &colOpts)
	cli.AddIOFlags(rootCmd, &ioOpts)
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	mapper, err := mapOpts.NewMapper()
	if err != nil {
		return err
	}
	defer mapper.Close()

	outFile, err := cli.OpenOutput(ioOpts.Output)
	if err != nil {
		return fmt.Errorf("opening output: %w", err)
	}
	defer outFile.Close()

	writer := cli.NewTabWriter(outFile)
	defer writer.Flush()

	delim := ioOpts.GetDelimiter()
	callOpts := mapOpts.MapCallOptions()

	if len(args) > 0 {
		for _, name := range args {
			result, err := mapper.MapName(ctx, name, mapOpts.From, mapOpts.To, callOpts...)
			if err != nil {
				return fmt.Errorf("translating %q: %w", name, err)
			}
			if err := writer.WriteRow(name, cli.FormatIDSet(result, delim)); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
		return nil
	}

	inFile, err := cli.OpenInput(ioOpts.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer inFile.Close()

	reader := cli.NewTabReader(inFile, !colOpts.NoHead)
	headers, err := reader.Headers()
	if err != nil && err != io.EOF {
		return fmt.Errorf("reading header: %w", err)
	}
	keyCol, err := reader.FindColumn(colOpts.Col)
	if err != nil {
		return err
	}
	if headers != nil {
		if err := writer.WriteHeaders(append(headers, mapOpts.To)); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		name := cli.KeyValue(row, keyCol)
		result, err := mapper.MapName(ctx, name, mapOpts.From, mapOpts.To, callOpts...)
		if err != nil {
			return fmt.Errorf("translating %q: %w", name, err)
		}
		if err := writer.WriteRow(append(row, cli.FormatIDSet(result, delim))...); err != nil {
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
