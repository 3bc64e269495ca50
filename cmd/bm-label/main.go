// Command bm-label appends human-readable labels to a stream of
// identifiers: gene symbols for proteins, miRNA names for mature
// miRNAs, and constructed multi-symbol identifiers for complexes.
//
// Usage:
//
//	bm-label [options] [id ...]
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
	Use:   "bm-label [id ...]",
	Short: "Produce human-readable labels for identifiers",
	Long: `Produce the canonical human-readable label for each identifier:
the gene symbol for proteins, the miRNA name for mature miRNAs, and a
COMPLEX: identifier built from component labels for complexes.

IDs given as arguments are labeled one per line; without arguments a
tab-delimited stream is read and the label of the key column is
appended as a new column.`,
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

	callOpts := mapOpts.MapCallOptions()

	if len(args) > 0 {
		for _, id := range args {
			label, err := mapper.Label(ctx, id, mapOpts.From, callOpts...)
			if err != nil {
				return fmt.Errorf("labeling %q: %w", id, err)
			}
			if err := writer.WriteRow(id, label); err != nil {
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
		if err := writer.WriteHeaders(append(headers, "label")); err != nil {
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
		id := cli.KeyValue(row, keyCol)
		label, err := mapper.Label(ctx, id, mapOpts.From, callOpts...)
		if err != nil {
			return fmt.Errorf("labeling %q: %w", id, err)
		}
		if err := writer.WriteRow(append(row, label)...); err != nil {
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
