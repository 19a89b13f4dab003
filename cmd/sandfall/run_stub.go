//go:build !ebiten

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the interactive sandbox window (requires the ebiten build tag)",
	Run: func(*cobra.Command, []string) {
		fmt.Fprintln(os.Stderr, "The window of sandfall requires the ebiten build tag.")
		fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/sandfall run` or use `sandfall term`.")
		os.Exit(2)
	},
}
