package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nanite-lod/clusterlod/cmd/clodbuild/internal/genmesh"
)

var statsGridSize int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the resolved build config and demo mesh size without building",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsGridSize, "grid-size", 0, "side length of the procedural demo grid (0 = use config/default)")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig()
	if err != nil {
		return err
	}
	if statsGridSize > 0 {
		cfg.GridSize = statsGridSize
	}

	meshCfg := cfg.MeshConfig()
	m := genmesh.Grid(cfg.GridSize)

	cmd.Printf("preset:              %s\n", cfg.Preset)
	cmd.Printf("max_triangles:       %d\n", meshCfg.MaxTriangles)
	cmd.Printf("partition_size:      %d\n", meshCfg.PartitionSize)
	cmd.Printf("simplify_ratio:      %.3f\n", meshCfg.SimplifyRatio)
	cmd.Printf("simplify_threshold:  %.3f\n", meshCfg.SimplifyThreshold)
	cmd.Printf("grid:                %dx%d\n", cfg.GridSize, cfg.GridSize)
	cmd.Printf("vertices:            %d\n", m.VertexCount)
	cmd.Printf("triangles:           %d\n", len(m.Indices)/3)
	if err := meshCfg.Validate(); err != nil {
		return fmt.Errorf("resolved config is invalid: %w", err)
	}
	cmd.Println("config is valid")
	return nil
}
