package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sandfall/internal/storage"
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List saved scenes",
	Long: `List the scenes stored in the scene database.

Examples:
  sandfall scenes
  sandfall scenes delete dunes`,
	Args: cobra.NoArgs,
	Run:  runScenes,
}

var scenesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved scene",
	Args:  cobra.ExactArgs(1),
	Run:   runScenesDelete,
}

func init() {
	scenesCmd.AddCommand(scenesDeleteCmd)
}

func openStore() *storage.Store {
	cfg, _ := setup()
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		exitf("Error opening scene database: %v", err)
	}
	return store
}

func runScenes(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	scenes, err := store.ListScenes()
	if err != nil {
		exitf("Error listing scenes: %v", err)
	}
	if len(scenes) == 0 {
		fmt.Println("No scenes saved yet.")
		fmt.Println()
		fmt.Println("Save one with 'sandfall headless --save <name>'.")
		return
	}

	fmt.Printf("  %-20s  %-9s  %-7s  %-12s  %s\n", "Name", "Size", "Cells", "Seed", "Saved")
	fmt.Printf("  %-20s  %-9s  %-7s  %-12s  %s\n", "----", "----", "-----", "----", "-----")
	for _, s := range scenes {
		size := fmt.Sprintf("%dx%d", s.Width, s.Height)
		fmt.Printf("  %-20s  %-9s  %-7d  %-12d  %s\n", s.Name, size, s.Cells, s.Seed, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runScenesDelete(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if err := store.DeleteScene(args[0]); err != nil {
		exitf("Error deleting scene: %v", err)
	}
	fmt.Printf("Deleted %s\n", args[0])
}
