// Package cmd implements the clodbuild command-line tool: a driver that
// generates a procedural grid mesh, runs it through clusterlod.Build, and
// reports the resulting cluster DAG, mirroring the role the original
// demo/main.cpp driver played for the reference implementation.
package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// rootCmd is the base command; build and stats are registered on it
// from their own files' init functions.
var rootCmd = &cobra.Command{
	Use:   "clodbuild",
	Short: "Build a hierarchical cluster LOD DAG from a triangle mesh",
	Long: `clodbuild drives the clusterlod builder end to end: clusterize,
partition, lock boundaries, simplify, re-clusterize, repeat, emitting
one group per level until a single root cluster remains.

It does not load model files: it always generates a procedural grid,
so the pipeline can be exercised and benchmarked without one.`,
}

// Execute runs the root command, exiting the process on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-group detail instead of only the final summary")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (optional)")

	binName := BinName()
	rootCmd.Example = `  # Build a 32x32 demo grid with the default rasterization preset
  ` + binName + ` build --grid-size 32

  # Build with the ray-tracing preset and a tighter partition size
  ` + binName + ` build --preset rt --partition-size 8

  # Print the config a run would use without building anything
  ` + binName + ` stats --grid-size 64`
}

// BinName returns the base name of the current executable, used to
// keep command Example text correct under any install path.
func BinName() string {
	return filepath.Base(os.Args[0])
}

// fatalf logs an error and exits the process. No command calls it;
// RunE handlers return their errors instead.
func fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}
