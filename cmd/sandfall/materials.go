package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sandfall/internal/brush"
	"sandfall/internal/sandbox"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Print the material table",
	Args:  cobra.NoArgs,
	Run:   runMaterials,
}

func runMaterials(_ *cobra.Command, _ []string) {
	table := sandbox.DefaultMaterials()
	keys := map[sandbox.Material]int{}
	for i, m := range brush.Palette {
		keys[m] = (i + 1) % 10
	}

	fmt.Printf("  %-15s  %-4s  %-8s  %-7s  %-9s  %s\n", "Material", "Key", "Movement", "Density", "Collision", "Health")
	fmt.Printf("  %-15s  %-4s  %-8s  %-7s  %-9s  %s\n", "--------", "---", "--------", "-------", "---------", "------")
	for _, m := range sandbox.AllMaterials() {
		p, ok := table.Template(m)
		if !ok {
			continue
		}
		key := "-"
		if k, ok := keys[m]; ok {
			key = fmt.Sprint(k)
		}
		fmt.Printf("  %-15s  %-4s  %-8s  %-7d  %-9s  %d\n", m, key, p.Movement, p.Density, p.Collision, p.Health.Amount)
	}
}
