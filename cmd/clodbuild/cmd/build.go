package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	clusterlod "github.com/nanite-lod/clusterlod"
	"github.com/nanite-lod/clusterlod/cmd/clodbuild/internal/config"
	"github.com/nanite-lod/clusterlod/cmd/clodbuild/internal/genmesh"
)

var (
	buildPreset        string
	buildMaxTriangles  int
	buildPartitionSize int
	buildSimplifyRatio float32
	buildGridSize      int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a cluster LOD DAG and report summary statistics",
	RunE:  runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	binName := BinName()
	buildCmd.Example = fmt.Sprintf(`  %s build --grid-size 48 --preset raster
  %s build --preset rt --max-triangles 64 --partition-size 8`, binName, binName)

	buildCmd.Flags().StringVar(&buildPreset, "preset", "", "raster or rt (overrides the config file's preset)")
	buildCmd.Flags().IntVar(&buildMaxTriangles, "max-triangles", 0, "cluster triangle budget (0 = use config/default)")
	buildCmd.Flags().IntVar(&buildPartitionSize, "partition-size", 0, "clusters per partition (0 = use config/default)")
	buildCmd.Flags().Float32Var(&buildSimplifyRatio, "simplify-ratio", 0, "target triangle ratio per simplify pass (0 = use config/default)")
	buildCmd.Flags().IntVar(&buildGridSize, "grid-size", 0, "side length of the procedural demo grid (0 = use config/default)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadBuildConfig()
	if err != nil {
		return err
	}

	m := genmesh.Grid(cfg.GridSize)
	meshCfg := cfg.MeshConfig()

	if verbose {
		cmd.Printf("preset=%s max_triangles=%d partition_size=%d simplify_ratio=%.3f grid=%dx%d triangles=%d\n",
			cfg.Preset, meshCfg.MaxTriangles, meshCfg.PartitionSize, meshCfg.SimplifyRatio, cfg.GridSize, cfg.GridSize, len(m.Indices)/3)
	}

	start := time.Now()
	groupCount := 0
	emit := func(g clusterlod.GroupOut, clusters []clusterlod.ClusterOut) int {
		id := groupCount
		groupCount++
		if verbose {
			cmd.Printf("group %3d  depth=%-2d clusters=%-3d error=%s\n",
				id, g.Depth, len(clusters), formatError(g.Simplified.Error))
		}
		return id
	}

	stats, err := clusterlod.Build(context.Background(), meshCfg, m, emit)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	elapsed := time.Since(start)

	cmd.Printf("groups=%d clusters=%d max_depth=%d terminal_groups=%d stalled_partitions=%d elapsed=%s\n",
		stats.GroupCount, stats.ClusterCount, stats.MaxDepth, stats.TerminalGroups, stats.StalledPartitions, elapsed)
	return nil
}

func loadBuildConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if buildPreset != "" {
		cfg.Preset = buildPreset
	}
	if buildMaxTriangles > 0 {
		cfg.MaxTriangles = buildMaxTriangles
	}
	if buildPartitionSize > 0 {
		cfg.PartitionSize = buildPartitionSize
	}
	if buildSimplifyRatio > 0 {
		cfg.SimplifyRatio = buildSimplifyRatio
	}
	if buildGridSize > 0 {
		cfg.GridSize = buildGridSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatError(e float32) string {
	if math.IsInf(float64(e), 1) {
		return "inf"
	}
	return fmt.Sprintf("%.5f", e)
}
