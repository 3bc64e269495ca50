// Command bm-id-types lists the ID types and translation pairs known
// to the built-in definition catalogue.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biomap/biomap-go/internal/cli"
)

var (
	mapOpts cli.MapOptions
	pairs   bool
)

var rootCmd = &cobra.Command{
	Use:   "bm-id-types",
	Short: "List known ID types and translation pairs",
	RunE:  run,
}

func init() {
	cli.AddMapFlags(rootCmd, &mapOpts)
	rootCmd.Flags().BoolVar(&pairs, "pairs", false,
		"list registered translation pairs instead of ID types")
}

func run(cmd *cobra.Command, args []string) error {
	mapper, err := mapOpts.NewMapper()
	if err != nil {
		return err
	}
	defer mapper.Close()

	if pairs {
		for _, def := range mapper.Registry().Pairs() {
			direction := "->"
			if def.Symmetric() {
				direction = "<->"
			}
			fmt.Printf("%s %s %s\ttaxon %d\t%s\n",
				def.IDTypeA, direction, def.IDTypeB, def.Taxon, def.Kind)
		}
		return nil
	}

	for _, idType := range mapper.IDTypes() {
		fmt.Println(idType)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
