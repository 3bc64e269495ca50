// Command bm-apikey stores or removes the API key used for
// authenticated mapping-data mirrors.
//
// The key is prompted for without echo and written to ~/.biomap_key
// with mode 0600. The BIOMAP_API_KEY environment variable takes
// precedence over the stored key.
package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/biomap/biomap-go/auth"
)

var clear bool

var rootCmd = &cobra.Command{
	Use:   "bm-apikey",
	Short: "Store the API key for authenticated mapping services",
	RunE:  run,
}

func init() {
	rootCmd.Flags().BoolVar(&clear, "clear", false,
		"remove the stored API key")
}

func run(cmd *cobra.Command, args []string) error {
	if clear {
		if err := auth.DeleteKey(); err != nil {
			return err
		}
		fmt.Println("API key removed.")
		return nil
	}

	fmt.Print("API key: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}

	key := strings.TrimSpace(string(raw))
	if key == "" {
		return fmt.Errorf("empty key")
	}

	if err := auth.SaveKey(key); err != nil {
		return err
	}
	fmt.Printf("API key saved to %s\n", auth.DefaultKeyPath())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
